package document

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var rgxUnsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// DiskStore writes documents into a single uploads directory and keeps the
// generated filename as the reference. Files are served back under
// /uploads/<filename> by the application's static route.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Store(fileBytes []byte, originalName string) ([]byte, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeBaseName(originalName))

	if err := os.WriteFile(filepath.Join(s.dir, name), fileBytes, 0o644); err != nil {
		return nil, err
	}

	return []byte(name), nil
}

func (s *DiskStore) Remove(reference []byte) error {
	if len(reference) == 0 {
		return nil
	}

	// References are bare filenames; anything else never reaches the disk.
	name := filepath.Base(string(reference))

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func (s *DiskStore) Resolve(r *http.Request, reference []byte) string {
	if len(reference) == 0 {
		return ""
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return fmt.Sprintf("%s://%s/uploads/%s", scheme, r.Host, string(reference))
}

// sanitizeBaseName strips any path components from the client-supplied
// filename and reduces it to a safe basename, keeping the extension.
func sanitizeBaseName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stem = rgxUnsafeFilenameChars.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "._")
	if stem == "" {
		stem = "file"
	}

	ext = rgxUnsafeFilenameChars.ReplaceAllString(ext, "")
	if ext == "." {
		ext = ""
	}

	return stem + ext
}
