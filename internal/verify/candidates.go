package verify

import "strings"

// combinedChecksumNames are release-wide checksum lists, in order of
// preference. Matching is case-insensitive.
var combinedChecksumNames = []string{
	"checksums.txt",
	"sha256sums",
	"sha256sums.txt",
}

// ChecksumCandidates returns the names among assetNames that may hold the
// checksum of assetName, most specific first.
func ChecksumCandidates(assetName string, assetNames []string) []string {
	var candidates []string
	for _, suffix := range []string{".sha256", ".sha256sum"} {
		if name, ok := findFold(assetNames, assetName+suffix); ok {
			candidates = append(candidates, name)
		}
	}
	for _, combined := range combinedChecksumNames {
		if name, ok := findFold(assetNames, combined); ok {
			candidates = append(candidates, name)
		}
	}

	// Project-prefixed lists such as "tool_1.2.0_checksums.txt"
	for _, name := range assetNames {
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, "checksums.txt") && !contains(candidates, name) {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

// SignatureCandidates returns the names among assetNames that may hold a
// detached signature of assetName.
func SignatureCandidates(assetName string, assetNames []string) []string {
	var candidates []string
	for _, suffix := range []string{".asc", ".sig"} {
		if name, ok := findFold(assetNames, assetName+suffix); ok {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

func findFold(names []string, want string) (string, bool) {
	for _, name := range names {
		if strings.EqualFold(name, want) {
			return name, true
		}
	}
	return "", false
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
