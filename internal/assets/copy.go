package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSameFile is returned when a destination resolves to its own source.
var ErrSameFile = errors.New("source and destination are the same file")

// copyFile copies src to dst, replacing dst, and carries over the source
// permission bits and modification time. A failed copy removes the partial
// destination. It returns the number of bytes written. The source is never
// opened for writing, and dst is left untouched when it is the source itself.
func copyFile(src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if dstInfo, err := os.Stat(dst); err == nil {
		if os.SameFile(srcInfo, dstInfo) {
			return 0, ErrSameFile
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("stat destination: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return written, err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return written, err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return written, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return written, fmt.Errorf("preserve mode: %w", err)
	}
	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return written, fmt.Errorf("preserve mtime: %w", err)
	}
	return written, nil
}

// sourceState classifies a source path before copying.
type sourceState int

const (
	sourcePresent sourceState = iota
	sourceAbsent
	sourceWrongType
)

// statFile reports whether path is a regular file. Only a missing path or a
// path of the wrong type is a skip; any other stat failure is returned.
func statFile(path string) (sourceState, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sourceAbsent, 0, nil
		}
		return sourceAbsent, 0, err
	}
	if !info.Mode().IsRegular() {
		return sourceWrongType, 0, nil
	}
	return sourcePresent, info.Size(), nil
}

// statDir reports whether path is a directory.
func statDir(path string) (sourceState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sourceAbsent, nil
		}
		return sourceAbsent, err
	}
	if !info.IsDir() {
		return sourceWrongType, nil
	}
	return sourcePresent, nil
}

func wrapCopyError(src, dst string, err error) error {
	return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
}
