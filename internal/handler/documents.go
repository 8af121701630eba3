package handler

import (
	"errors"
	"net/http"

	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/errHandler"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/response"
)

// documentRepository is the repository surface the generic document
// protocol needs. Customer and worker repositories both satisfy it; each
// brings its own field allow-list.
type documentRepository interface {
	HasDocumentField(field string) bool
	GetDocument(id int64, field string) ([]byte, bool, error)
	UpdateDocument(id int64, field string, reference []byte) (bool, error)
	ClearDocument(id int64, field string) (bool, error)
}

// documentProtocol implements the shared replace/clear contract for the
// document fields of one entity type.
type documentProtocol struct {
	repo            documentRepository
	documents       document.Store
	errHandler      *errHandler.ErrorHandler
	helper          *helper.HelperRepository
	notFoundMessage string
	updatedMessage  string
	deletedMessage  string
}

func (p *documentProtocol) handleUpdate(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !p.repo.HasDocumentField(field) {
		p.errHandler.BadRequest(w, r, errors.New("invalid 'field' query"))
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		p.errHandler.BadRequest(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadSize+512*1024)
	if err := r.ParseMultipartForm(document.MaxUploadSize); err != nil {
		p.errHandler.BadRequest(w, r, errors.New("unable to parse multipart form"))
		return
	}

	fileBytes, fileName, uploaded, err := formFileBytes(r, "file")
	if err != nil {
		p.errHandler.BadRequest(w, r, err)
		return
	}
	if !uploaded {
		p.errHandler.BadRequest(w, r, errors.New("no file uploaded (use form field 'file')"))
		return
	}

	// Look the entity up before staging anything, so a missing entity
	// never leaves an orphaned file behind.
	previous, found, err := p.repo.GetDocument(id, field)
	if err != nil {
		p.errHandler.ServerError(w, r, err)
		return
	}
	if !found {
		p.errHandler.NotFoundWithMessage(w, r, p.notFoundMessage)
		return
	}

	reference, err := p.documents.Store(fileBytes, fileName)
	if err != nil {
		p.errHandler.ServerError(w, r, err)
		return
	}

	updated, err := p.repo.UpdateDocument(id, field, reference)
	if err != nil {
		p.discardStaged(reference)
		p.errHandler.ServerError(w, r, err)
		return
	}
	if !updated {
		// The entity disappeared between lookup and write.
		p.discardStaged(reference)
		p.errHandler.NotFoundWithMessage(w, r, p.notFoundMessage)
		return
	}

	// The database row is the record of truth; deleting the replaced
	// file is best-effort and never surfaces to the caller.
	if len(previous) > 0 {
		p.helper.BackgroundTask(r, func() error {
			return p.documents.Remove(previous)
		})
	}

	err = response.JSONOkResponse(w, nil, p.updatedMessage, nil)
	if err != nil {
		p.errHandler.ServerError(w, r, err)
	}
}

func (p *documentProtocol) handleDelete(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !p.repo.HasDocumentField(field) {
		p.errHandler.BadRequest(w, r, errors.New("invalid or missing 'field' query"))
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		p.errHandler.BadRequest(w, r, err)
		return
	}

	previous, found, err := p.repo.GetDocument(id, field)
	if err != nil {
		p.errHandler.ServerError(w, r, err)
		return
	}
	if !found {
		p.errHandler.NotFoundWithMessage(w, r, p.notFoundMessage)
		return
	}

	// Clearing an already-empty field is a valid no-op.
	cleared, err := p.repo.ClearDocument(id, field)
	if err != nil {
		p.errHandler.ServerError(w, r, err)
		return
	}
	if !cleared {
		p.errHandler.NotFoundWithMessage(w, r, p.notFoundMessage)
		return
	}

	if len(previous) > 0 {
		p.helper.BackgroundTask(r, func() error {
			return p.documents.Remove(previous)
		})
	}

	err = response.JSONOkResponse(w, nil, p.deletedMessage, nil)
	if err != nil {
		p.errHandler.ServerError(w, r, err)
	}
}

func (p *documentProtocol) discardStaged(reference []byte) {
	if err := p.documents.Remove(reference); err != nil {
		p.errHandler.ReportServerError(nil, err)
	}
}
