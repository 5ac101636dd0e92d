// Package download fetches and unpacks prebuilt toolchain archives.
package download

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/vvm/vvm/src/internal/ui"
)

// ErrChecksumMismatch reports a file whose SHA256 digest is not the
// expected one.
type ErrChecksumMismatch struct {
	Expected string
	Actual   string
}

func (e *ErrChecksumMismatch) Error() string {
	return "checksum mismatch: want " + e.Expected + ", got " + e.Actual
}

// sameDigest compares hex digests ignoring case and surrounding space
func sameDigest(expected, actual string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(actual))
}

func hexDigest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// FileVerified downloads url into destPath, hashing the stream as it
// is written. On a digest mismatch the file is removed and an
// ErrChecksumMismatch returned.
func FileVerified(url, destPath, expectedSHA256 string) error {
	ui.Debug("Downloading %s -> %s (SHA256 %s)", url, destPath, expectedSHA256)

	actual, err := fetchHashed(url, destPath)
	if err != nil {
		return err
	}
	ui.Debug("Actual SHA256: %s", actual)

	if !sameDigest(expectedSHA256, actual) {
		_ = os.Remove(destPath)
		return &ErrChecksumMismatch{Expected: expectedSHA256, Actual: actual}
	}
	return nil
}

// fetchHashed streams url into destPath and returns the hex SHA256
// digest of the bytes written. The partial file is removed on copy
// errors.
func fetchHashed(url, destPath string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	ui.Debug("Archive server answered %s", resp.Status)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s failed: HTTP %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", err
	}
	out, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = out.Close() }()

	bar := progressbar.DefaultBytes(resp.ContentLength, "Downloading")
	hasher := sha256.New()

	if _, err := io.Copy(io.MultiWriter(out, bar, hasher), resp.Body); err != nil {
		_ = os.Remove(destPath)
		return "", err
	}
	fmt.Println() // the progress bar leaves the cursor mid-line

	return hexDigest(hasher), nil
}

// VerifyFile checks an existing file against an expected SHA256 digest
func VerifyFile(filePath, expectedSHA256 string) error {
	actual, err := ComputeSHA256(filePath)
	if err != nil {
		return err
	}
	if !sameDigest(expectedSHA256, actual) {
		return &ErrChecksumMismatch{Expected: expectedSHA256, Actual: actual}
	}
	return nil
}

// ComputeSHA256 returns the hex SHA256 digest of a file
func ComputeSHA256(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hexDigest(hasher), nil
}
