package artifact

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// hasherFor returns a fresh hash.Hash for a checksum policy name, matching
// the "checksum" config key's allowed values.
func hasherFor(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "sha3-256":
		return sha3.New256(), nil
	case "sha3-512":
		return sha3.New512(), nil
	case "blake2b":
		return blake2b.New256(nil)
	case "blake2s":
		return blake2s.New256(nil)
	case "false", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown checksum algorithm %q", algorithm)
	}
}

// Checksum computes the hex digest of r under the given algorithm. An
// empty digest and nil error is returned for "false" (checksumming
// disabled).
func Checksum(algorithm string, r io.Reader) (string, error) {
	h, err := hasherFor(algorithm)
	if err != nil {
		return "", err
	}
	if h == nil {
		return "", nil
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ChecksumFilename returns the conventional sidecar filename for an
// artifact's checksum, e.g. "myapp-x86_64.tar.gz.sha256".
func ChecksumFilename(artifactFilename, algorithm string) string {
	return artifactFilename + "." + algorithm
}
