package document

import (
	"fmt"
	"net/http"
)

// MaxUploadSize caps each uploaded document at 10 MiB. Oversized requests
// are rejected before any bytes reach a store.
const MaxUploadSize = 10 << 20

const (
	ModeDisk       = "disk"
	ModeBlob       = "blob"
	ModeCloudinary = "cloudinary"
)

// Store persists uploaded documents and turns stored references back into
// an externally usable form. A reference is whatever the strategy needs to
// keep in the entity's document column: the raw bytes for blob storage, a
// generated filename for disk storage, a URL for cloudinary.
type Store interface {
	// Store materializes the upload and returns the reference to persist.
	Store(fileBytes []byte, originalName string) ([]byte, error)

	// Remove discards a previously stored document. Removal is best-effort:
	// a reference whose backing file is already gone is not an error.
	Remove(reference []byte) error

	// Resolve converts a stored reference into the representation exposed
	// in responses. The request supplies host and scheme where the
	// reference is served by this process.
	Resolve(r *http.Request, reference []byte) string
}

// New selects a storage strategy by configured mode.
func New(mode, uploadDir, cloudName, apiKey, apiSecret string) (Store, error) {
	switch mode {
	case ModeDisk:
		return NewDiskStore(uploadDir), nil
	case ModeBlob:
		return NewBlobStore(), nil
	case ModeCloudinary:
		return NewCloudinaryStore(cloudName, apiKey, apiSecret), nil
	}

	return nil, fmt.Errorf("unknown storage mode %q", mode)
}
