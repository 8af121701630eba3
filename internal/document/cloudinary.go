package document

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads documents to Cloudinary and keeps the secure URL
// as the reference, so Resolve is the identity.
type CloudinaryStore struct {
	cloud_name string
	api_key    string
	api_secret string
}

func NewCloudinaryStore(cloud_name, api_key, api_secret string) *CloudinaryStore {
	return &CloudinaryStore{
		cloud_name: cloud_name,
		api_key:    api_key,
		api_secret: api_secret,
	}
}

func (s *CloudinaryStore) Store(fileBytes []byte, originalName string) ([]byte, error) {
	cld, err := cloudinary.NewFromParams(s.cloud_name, s.api_key, s.api_secret)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{})
	if err != nil {
		return nil, err
	}

	return []byte(uploadResult.SecureURL), nil
}

func (s *CloudinaryStore) Remove(reference []byte) error {
	if len(reference) == 0 {
		return nil
	}

	cld, err := cloudinary.NewFromParams(s.cloud_name, s.api_key, s.api_secret)
	if err != nil {
		return err
	}

	// The public ID is the delivery URL's basename without its extension.
	base := path.Base(string(reference))
	publicID := strings.TrimSuffix(base, path.Ext(base))

	ctx := context.Background()
	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

func (s *CloudinaryStore) Resolve(r *http.Request, reference []byte) string {
	return string(reference)
}
