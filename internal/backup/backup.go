// Package backup copies the system file that carries the boot logo before it
// is touched, and checks whether the current user may modify it.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Suffix is appended to the target's base name to form the backup name.
const Suffix = ".backup"

// ErrNotRegular is returned when the target is a directory or device.
var ErrNotRegular = errors.New("not a regular file")

// Path returns where Backup places the copy of target inside dir.
func Path(target, dir string) string {
	return filepath.Join(dir, filepath.Base(target)+Suffix)
}

// Backup copies target to dir/<base>.backup, creating dir if needed, and
// carries over the permission bits and modification time. An existing backup
// is overwritten. It returns the backup path.
func Backup(target, dir string) (string, error) {
	st, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", target, err)
	}
	if !st.Mode().IsRegular() {
		return "", fmt.Errorf("backup %s: %w", target, ErrNotRegular)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	dst := Path(target, dir)
	if err := copyFile(target, dst, st.Mode().Perm()); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("copying %s: %w", target, err)
	}
	if err := os.Chtimes(dst, st.ModTime(), st.ModTime()); err != nil {
		return "", fmt.Errorf("setting backup times: %w", err)
	}

	if _, err := os.Stat(dst); err != nil {
		return "", fmt.Errorf("backup not created: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CheckAccess reports nil when path exists, can be read, and can be opened
// for writing. Opening for write does not truncate or modify the file.
func CheckAccess(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("access %s: %w", path, ErrNotRegular)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("no read access: %w", err)
	}
	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return fmt.Errorf("no read access: %w", err)
	}
	f.Close()

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("no write access: %w", err)
	}
	return w.Close()
}
