package download

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// entryPath resolves an archive member name under destDir and rejects
// names that would escape it
func entryPath(destDir, name string) (string, error) {
	p := filepath.Join(destDir, name)
	if !strings.HasPrefix(p, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return p, nil
}

// writeEntry creates destPath with the given mode and fills it from src
func writeEntry(destPath string, mode os.FileMode, src io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, src)
	return err
}

// unpackFile extracts one zip or 7z member, directory or regular file
func unpackFile(destDir, name string, info os.FileInfo, open func() (io.ReadCloser, error)) error {
	destPath, err := entryPath(destDir, name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.MkdirAll(destPath, info.Mode())
	}

	src, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	return writeEntry(destPath, info.Mode(), src)
}

// ExtractZip unpacks a zip archive into destDir
func ExtractZip(zipPath, destDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer func() { _ = zr.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, f := range zr.File {
		if err := unpackFile(destDir, f.Name, f.FileInfo(), f.Open); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

// Extract7z unpacks a 7z archive into destDir
func Extract7z(archivePath, destDir string) error {
	sz, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = sz.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	// Members come in archive order, so solid blocks decompress once
	for _, f := range sz.File {
		if err := unpackFile(destDir, f.Name, f.FileInfo(), f.Open); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

// ExtractTarGz unpacks a tar.gz archive into destDir
func ExtractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer func() { _ = gz.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := untarEntry(tr, hdr, destDir); err != nil {
			return fmt.Errorf("extracting %s: %w", hdr.Name, err)
		}
	}
	return nil
}

func untarEntry(tr *tar.Reader, hdr *tar.Header, destDir string) error {
	destPath, err := entryPath(destDir, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(destPath, os.FileMode(hdr.Mode))
	case tar.TypeReg:
		return writeEntry(destPath, os.FileMode(hdr.Mode), tr)
	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		return os.Symlink(hdr.Linkname, destPath)
	}
	// Hard links and device nodes do not appear in release archives
	return nil
}

// StripTopLevelDir promotes the contents of a sole top-level directory,
// the usual shape of release archives (verilator-v5.024/ wrapping bin/,
// include/ and the rest).
func StripTopLevelDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) != 1 {
		return nil
	}
	wrapper := entries[0]
	if !wrapper.IsDir() {
		return nil
	}

	// Rename the extraction dir aside, then lift the wrapper into its place
	aside := dir + ".tmp"
	if err := os.Rename(dir, aside); err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(aside, wrapper.Name()), dir); err != nil {
		_ = os.Rename(aside, dir)
		return err
	}
	return os.RemoveAll(aside)
}
