package document

import (
	"encoding/base64"
	"net/http"
	"slices"
)

// BlobStore keeps the uploaded bytes themselves as the reference, so the
// document lives entirely inside the entity's database column. There is
// nothing on disk to clean up, which makes Remove a no-op.
type BlobStore struct{}

func NewBlobStore() *BlobStore {
	return &BlobStore{}
}

func (s *BlobStore) Store(fileBytes []byte, originalName string) ([]byte, error) {
	return slices.Clone(fileBytes), nil
}

func (s *BlobStore) Remove(reference []byte) error {
	return nil
}

func (s *BlobStore) Resolve(r *http.Request, reference []byte) string {
	if len(reference) == 0 {
		return ""
	}

	return base64.StdEncoding.EncodeToString(reference)
}
