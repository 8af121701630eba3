package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/kaamwala/kaamwala/internal/document"
)

var errFileTooLarge = errors.New("file exceeds the 10 MiB upload limit")

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}

// formFileBytes reads one uploaded file from the parsed multipart form.
// The boolean reports whether the field carried a file at all.
func formFileBytes(r *http.Request, field string) ([]byte, string, bool, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", false, nil
		}
		return nil, "", false, err
	}
	defer file.Close()

	if header.Size > document.MaxUploadSize {
		return nil, "", false, errFileTooLarge
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, "", false, err
	}

	return fileBytes, header.Filename, true, nil
}
