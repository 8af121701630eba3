package document

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobStore_RoundTrip(t *testing.T) {
	store := NewBlobStore()

	content := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	reference, err := store.Store(content, "profile.png")
	require.NoError(t, err)
	require.Equal(t, content, reference)

	r := httptest.NewRequest("GET", "http://localhost/api/customer/1", nil)

	decoded, err := base64.StdEncoding.DecodeString(store.Resolve(r, reference))
	require.NoError(t, err)
	require.Equal(t, content, decoded)
}

func TestBlobStore_StoreCopiesInput(t *testing.T) {
	store := NewBlobStore()

	content := []byte("original")
	reference, err := store.Store(content, "doc.pdf")
	require.NoError(t, err)

	content[0] = 'X'
	require.Equal(t, byte('o'), reference[0])
}

func TestBlobStore_RemoveIsNoOp(t *testing.T) {
	store := NewBlobStore()

	require.NoError(t, store.Remove([]byte("anything")))
	require.NoError(t, store.Remove(nil))
}

func TestBlobStore_ResolveEmpty(t *testing.T) {
	store := NewBlobStore()

	r := httptest.NewRequest("GET", "http://localhost/", nil)
	require.Equal(t, "", store.Resolve(r, nil))
}

func TestNewSelectsMode(t *testing.T) {
	store, err := New(ModeBlob, "", "", "", "")
	require.NoError(t, err)
	require.IsType(t, &BlobStore{}, store)

	store, err = New(ModeDisk, t.TempDir(), "", "", "")
	require.NoError(t, err)
	require.IsType(t, &DiskStore{}, store)

	_, err = New("ftp", "", "", "", "")
	require.Error(t, err)
}
