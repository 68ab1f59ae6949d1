package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumCandidates(t *testing.T) {
	assets := []string{
		"tool_1.2.0_linux_amd64.tar.gz",
		"tool_1.2.0_linux_amd64.tar.gz.sha256",
		"tool_1.2.0_checksums.txt",
		"SHA256SUMS",
		"checksums.txt",
	}

	got := ChecksumCandidates("tool_1.2.0_linux_amd64.tar.gz", assets)
	assert.Equal(t, []string{
		"tool_1.2.0_linux_amd64.tar.gz.sha256",
		"checksums.txt",
		"SHA256SUMS",
		"tool_1.2.0_checksums.txt",
	}, got)
}

func TestChecksumCandidates_None(t *testing.T) {
	assert.Empty(t, ChecksumCandidates("tool.zip", []string{"tool.zip", "README.md"}))
}

func TestSignatureCandidates(t *testing.T) {
	assets := []string{"tool.tar.gz", "tool.tar.gz.sig", "tool.tar.gz.asc", "other.tar.gz.asc"}

	assert.Equal(t, []string{"tool.tar.gz.asc", "tool.tar.gz.sig"}, SignatureCandidates("tool.tar.gz", assets))
	assert.Empty(t, SignatureCandidates("other.zip", assets))
}
