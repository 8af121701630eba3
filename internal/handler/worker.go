package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/errHandler"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/models"
	"github.com/kaamwala/kaamwala/internal/repository"
	"github.com/kaamwala/kaamwala/internal/response"
	"github.com/kaamwala/kaamwala/internal/validator"
)

type WorkerResponseData struct {
	ID                  int64     `json:"id"`
	FullName            string    `json:"fullName"`
	Cnic                string    `json:"cnic"`
	Phone               string    `json:"phone"`
	City                string    `json:"city"`
	Skill               string    `json:"skill"`
	AvailableHours      string    `json:"availableHours"`
	About               string    `json:"about,omitempty"`
	CnicFront           string    `json:"cnicFront,omitempty"`
	CnicBack            string    `json:"cnicBack,omitempty"`
	ProfilePic          string    `json:"profilePic,omitempty"`
	WorkCert            string    `json:"workCert,omitempty"`
	License             string    `json:"license,omitempty"`
	LicenseBack         string    `json:"licenseBack,omitempty"`
	WorkerFormCompleted bool      `json:"workerFormCompleted"`
	CreatedAt           time.Time `json:"createdAt"`
}

type WorkerHandler struct {
	WorkerRepo repository.WorkerRepository
	Documents  document.Store
	ErrHandler *errHandler.ErrorHandler
	Helper     *helper.HelperRepository

	documents *documentProtocol
}

func NewWorkerHandler(handler *WorkerHandler) *WorkerHandler {
	return &WorkerHandler{
		WorkerRepo: handler.WorkerRepo,
		Documents:  handler.Documents,
		ErrHandler: handler.ErrHandler,
		Helper:     handler.Helper,
		documents: &documentProtocol{
			repo:            handler.WorkerRepo,
			documents:       handler.Documents,
			errHandler:      handler.ErrHandler,
			helper:          handler.Helper,
			notFoundMessage: "Worker not found",
			updatedMessage:  "Document updated successfully",
			deletedMessage:  "File deleted successfully",
		},
	}
}

func (h *WorkerHandler) HandleWorkerCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 6*document.MaxUploadSize+512*1024)
	if err := r.ParseMultipartForm(document.MaxUploadSize); err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("unable to parse multipart form"))
		return
	}

	var input struct {
		FullName       string
		Cnic           string
		Phone          string
		City           string
		Skill          string
		AvailableHours string
		About          string
		Validator      validator.Validator
	}

	input.FullName = r.FormValue("fullName")
	input.Cnic = r.FormValue("cnic")
	input.Phone = r.FormValue("phone")
	input.City = r.FormValue("city")
	input.Skill = r.FormValue("skill")
	input.AvailableHours = r.FormValue("availableHours")
	input.About = r.FormValue("about")

	input.Validator.Check(validator.NotBlank(input.FullName), "Full name is required")
	input.Validator.Check(validator.NotBlank(input.Cnic), "CNIC is required")
	input.Validator.Check(validator.NotBlank(input.Phone), "Phone is required")
	input.Validator.Check(validator.NotBlank(input.City), "City is required")
	input.Validator.Check(validator.NotBlank(input.Skill), "Skill is required")
	input.Validator.Check(validator.NotBlank(input.AvailableHours), "Available hours is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	worker := &models.Worker{
		FullName:       input.FullName,
		Cnic:           input.Cnic,
		Phone:          input.Phone,
		City:           input.City,
		Skill:          input.Skill,
		AvailableHours: input.AvailableHours,
		About:          sql.NullString{String: input.About, Valid: input.About != ""},
	}

	var staged [][]byte
	store := func(field string, dst *[]byte) error {
		fileBytes, fileName, uploaded, err := formFileBytes(r, field)
		if err != nil || !uploaded {
			return err
		}

		reference, err := h.Documents.Store(fileBytes, fileName)
		if err != nil {
			return err
		}

		staged = append(staged, reference)
		*dst = reference
		return nil
	}

	err := errors.Join(
		store(repository.DocumentFieldCnicFront, &worker.CnicFront),
		store(repository.DocumentFieldCnicBack, &worker.CnicBack),
		store(repository.DocumentFieldProfilePic, &worker.ProfilePic),
		store(repository.DocumentFieldWorkCert, &worker.WorkCert),
		store(repository.DocumentFieldLicense, &worker.License),
		store(repository.DocumentFieldLicenseBack, &worker.LicenseBack),
	)
	if err != nil {
		h.discardStaged(staged)
		if errors.Is(err, errFileTooLarge) {
			h.ErrHandler.BadRequest(w, r, errFileTooLarge)
			return
		}
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	id, err := h.WorkerRepo.Insert(worker)
	if err != nil {
		h.discardStaged(staged)
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Worker registered successfully"
	err = response.JSONCreatedResponse(w, map[string]any{"workerId": id}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *WorkerHandler) HandleWorkerGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	worker, found, err := h.WorkerRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFoundWithMessage(w, r, "Worker not found")
		return
	}

	data := &WorkerResponseData{
		ID:                  worker.ID,
		FullName:            worker.FullName,
		Cnic:                worker.Cnic,
		Phone:               worker.Phone,
		City:                worker.City,
		Skill:               worker.Skill,
		AvailableHours:      worker.AvailableHours,
		About:               worker.About.String,
		CnicFront:           h.Documents.Resolve(r, worker.CnicFront),
		CnicBack:            h.Documents.Resolve(r, worker.CnicBack),
		ProfilePic:          h.Documents.Resolve(r, worker.ProfilePic),
		WorkCert:            h.Documents.Resolve(r, worker.WorkCert),
		License:             h.Documents.Resolve(r, worker.License),
		LicenseBack:         h.Documents.Resolve(r, worker.LicenseBack),
		WorkerFormCompleted: worker.WorkerFormCompleted,
		CreatedAt:           worker.CreatedAt,
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *WorkerHandler) HandleWorkerStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	completed, found, err := h.WorkerRepo.GetStatus(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFoundWithMessage(w, r, "Worker not found")
		return
	}

	data := map[string]any{"workerFormCompleted": completed}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *WorkerHandler) HandleWorkerDocumentUpdate(w http.ResponseWriter, r *http.Request) {
	h.documents.handleUpdate(w, r)
}

func (h *WorkerHandler) HandleWorkerDocumentDelete(w http.ResponseWriter, r *http.Request) {
	h.documents.handleDelete(w, r)
}

func (h *WorkerHandler) discardStaged(staged [][]byte) {
	for _, reference := range staged {
		if err := h.Documents.Remove(reference); err != nil {
			h.ErrHandler.ReportServerError(nil, err)
		}
	}
}
