package verify

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// ErrChecksumMismatch is returned when the artifact's digest differs from
// the published one.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Method is a verification method.
type Method string

const (
	MethodSHA256 Method = "sha256"
	MethodGPG    Method = "gpg"
)

// Result records a successful verification.
type Result struct {
	Method Method
	// Against is the checksum or signature file that was used.
	Against string
	// Signer is the primary identity of the signing key, GPG only.
	Signer string
}

// Checksum verifies that the SHA256 digest of the file at artifactPath
// matches the entry for assetName in checksumsPath.
func Checksum(artifactPath, assetName, checksumsPath string) (*Result, error) {
	actual, err := sha256File(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := findChecksum(checksumsPath, assetName)
	if err != nil {
		return nil, fmt.Errorf("find checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return nil, fmt.Errorf("%w for %s:\nactual:   %s\nexpected: %s",
			ErrChecksumMismatch, assetName, actual, expected)
	}

	return &Result{Method: MethodSHA256, Against: checksumsPath}, nil
}

// Signature verifies the detached signature at signaturePath over the file
// at artifactPath with the keys in keyringPath.
func Signature(artifactPath, signaturePath, keyringPath string) (*Result, error) {
	keyring, err := LoadKeyring(keyringPath)
	if err != nil {
		return nil, err
	}

	artifact, err := os.Open(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer artifact.Close()

	signature, err := os.ReadFile(signaturePath)
	if err != nil {
		return nil, fmt.Errorf("open signature: %w", err)
	}

	var signer *openpgp.Entity
	if isArmored(signature) {
		signer, err = openpgp.CheckArmoredDetachedSignature(keyring, artifact, bytes.NewReader(signature), nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(keyring, artifact, bytes.NewReader(signature), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}

	result := &Result{Method: MethodGPG, Against: signaturePath}
	if id := signer.PrimaryIdentity(); id != nil {
		result.Signer = id.Name
	}
	return result, nil
}

// LoadKeyring reads an armored or binary OpenPGP keyring.
func LoadKeyring(keyringPath string) (openpgp.EntityList, error) {
	data, err := os.ReadFile(keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	var keyring openpgp.EntityList
	if isArmored(data) {
		keyring, err = openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	} else {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}
	return keyring, nil
}

func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN PGP"))
}

func sha256File(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum looks up filename in a sha256sum style file:
//
//	abc123...  tool.tar.gz
//	abc123... *tool.tar.gz
//
// A file holding a single bare digest is accepted as the checksum of
// whatever asset it was published for.
func findChecksum(checksumsPath, filename string) (string, error) {
	file, err := os.Open(checksumsPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	var bare []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		switch len(parts) {
		case 0:
			continue
		case 1:
			if isDigest(parts[0]) {
				bare = append(bare, parts[0])
			}
			continue
		}

		// "*" marks binary mode in sha256sum output
		name := strings.TrimPrefix(parts[1], "*")
		if name == filename || path.Base(name) == filename {
			return parts[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read checksum file: %w", err)
	}

	if len(bare) == 1 {
		return bare[0], nil
	}
	return "", fmt.Errorf("no checksum for %s in %s", filename, path.Base(checksumsPath))
}

func isDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
