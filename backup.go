package rechnung

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// CreateBackup zips the whole rechnungen tree into the backup directory and
// returns the archive path. The archive name carries a timestamp, so
// backups never overwrite each other.
func CreateBackup(rechnungenDir, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create backup directory %q: %w", backupDir, err)
	}

	stamp := time.Now().Format("2006-01-02--15-04-05")
	path := filepath.Join(backupDir, "backup-rechnungen--"+stamp+".zip")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create backup %q: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(rechnungenDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(rechnungenDir, p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		os.Remove(path)
		return "", fmt.Errorf("cannot archive %q: %w", rechnungenDir, err)
	}
	if err := zw.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("cannot finish backup %q: %w", path, err)
	}
	return path, nil
}
