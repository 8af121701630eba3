package document

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStore_StoreAndResolve(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	content := []byte("front side of the card")

	reference, err := store.Store(content, "cnic front.png")
	require.NoError(t, err)

	name := string(reference)
	require.Regexp(t, regexp.MustCompile(`^\d+-cnic_front\.png$`), name)

	stored, err := os.ReadFile(filepath.Join(store.dir, name))
	require.NoError(t, err)
	require.Equal(t, content, stored)

	r := httptest.NewRequest("GET", "http://api.example.com/api/customer/1", nil)
	require.Equal(t, "http://api.example.com/uploads/"+name, store.Resolve(r, reference))
}

func TestDiskStore_ResolveHonorsForwardedProto(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	r := httptest.NewRequest("GET", "http://api.example.com/api/worker/1", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	resolved := store.Resolve(r, []byte("123-pic.jpg"))
	require.Equal(t, "https://api.example.com/uploads/123-pic.jpg", resolved)
}

func TestDiskStore_ResolveEmptyReference(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	r := httptest.NewRequest("GET", "http://api.example.com/", nil)
	require.Equal(t, "", store.Resolve(r, nil))
}

func TestDiskStore_Remove(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	reference, err := store.Store([]byte("expired license"), "license.jpg")
	require.NoError(t, err)

	require.NoError(t, store.Remove(reference))

	_, err = os.Stat(filepath.Join(store.dir, string(reference)))
	require.True(t, os.IsNotExist(err))

	// removing an already-gone file is not an error
	require.NoError(t, store.Remove(reference))
	require.NoError(t, store.Remove(nil))
}

func TestDiskStore_StoreCreatesUploadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewDiskStore(dir)

	_, err := store.Store([]byte("profile"), "me.jpeg")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"plain", "photo.png", "photo.png"},
		{"spaces and symbols", "my cnic (front)!.jpg", "my_cnic_front.jpg"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\me\pic.png`, "pic.png"},
		{"empty stem", "....", "file"},
		{"no extension", "scan", "scan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sanitizeBaseName(tt.original))
		})
	}
}
