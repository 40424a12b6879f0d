package rechnung

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rechnungen")
	if err := os.MkdirAll(filepath.Join(src, "rechnungen-2024"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "rechnungen-2024", "TEST010124.pdf"), []byte("doc"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := CreateBackup(src, filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatalf("CreateBackup() returned an unexpected error: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "backup-rechnungen--") || !strings.HasSuffix(name, ".zip") {
		t.Errorf("archive name = %q", name)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("cannot open archive: %v", err)
	}
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if len(names) != 1 || names[0] != "rechnungen-2024/TEST010124.pdf" {
		t.Errorf("archive contents = %v", names)
	}
}
