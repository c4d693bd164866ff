package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FileChecksum returns the hex xxhash digest of the file at path.
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Key hashes parts into a fixed-width cache key under prefix.
func Key(prefix string, parts ...string) string {
	digest := xxhash.Sum64String(strings.Join(parts, ";"))
	return fmt.Sprintf("%s:%016x", prefix, digest)
}
