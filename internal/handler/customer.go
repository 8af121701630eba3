package handler

import (
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

type CustomerResponseData struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"fullName"`
	Cnic       string    `json:"cnic"`
	Phone      string    `json:"phone"`
	City       string    `json:"city"`
	CnicFront  string    `json:"cnicFront,omitempty"`
	CnicBack   string    `json:"cnicBack,omitempty"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CustomerHandler struct {
	CustomerRepo repository.CustomerRepository
	Documents    document.Store
	ErrHandler   *errHandler.ErrorHandler
	Helper       *helper.HelperRepository

	documents *documentProtocol
}

func NewCustomerHandler(handler *CustomerHandler) *CustomerHandler {
	return &CustomerHandler{
		CustomerRepo: handler.CustomerRepo,
		Documents:    handler.Documents,
		ErrHandler:   handler.ErrHandler,
		Helper:       handler.Helper,
		documents: &documentProtocol{
			repo:            handler.CustomerRepo,
			documents:       handler.Documents,
			errHandler:      handler.ErrHandler,
			helper:          handler.Helper,
			notFoundMessage: "Customer not found",
			updatedMessage:  "Customer document updated successfully",
			deletedMessage:  "Customer document deleted successfully",
		},
	}
}

func (h *CustomerHandler) HandleCustomerCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 3*document.MaxUploadSize+512*1024)
	if err := r.ParseMultipartForm(document.MaxUploadSize); err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("unable to parse multipart form"))
		return
	}

	var input struct {
		FullName  string
		Cnic      string
		Phone     string
		City      string
		Validator validator.Validator
	}

	input.FullName = r.FormValue("fullName")
	input.Cnic = r.FormValue("cnic")
	input.Phone = r.FormValue("phone")
	input.City = r.FormValue("city")

	input.Validator.Check(validator.NotBlank(input.FullName), "Full name is required")
	input.Validator.Check(validator.NotBlank(input.Cnic), "CNIC is required")
	input.Validator.Check(validator.NotBlank(input.Phone), "Phone is required")
	input.Validator.Check(validator.NotBlank(input.City), "City is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	customer := &models.Customer{
		FullName: input.FullName,
		Cnic:     input.Cnic,
		Phone:    input.Phone,
		City:     input.City,
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
		store(repository.DocumentFieldCnicFront, &customer.CnicFront),
		store(repository.DocumentFieldCnicBack, &customer.CnicBack),
		store(repository.DocumentFieldProfilePic, &customer.ProfilePic),
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

	id, err := h.CustomerRepo.Insert(customer)
	if err != nil {
		h.discardStaged(staged)
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Customer registered successfully"
	err = response.JSONCreatedResponse(w, map[string]any{"customerId": id}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CustomerHandler) HandleCustomerGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	customer, found, err := h.CustomerRepo.GetOne(id)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFoundWithMessage(w, r, "Customer not found")
		return
	}

	data := &CustomerResponseData{
		ID:         customer.ID,
		FullName:   customer.FullName,
		Cnic:       customer.Cnic,
		Phone:      customer.Phone,
		City:       customer.City,
		CnicFront:  h.Documents.Resolve(r, customer.CnicFront),
		CnicBack:   h.Documents.Resolve(r, customer.CnicBack),
		ProfilePic: h.Documents.Resolve(r, customer.ProfilePic),
		CreatedAt:  customer.CreatedAt,
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CustomerHandler) HandleCustomerDocumentUpdate(w http.ResponseWriter, r *http.Request) {
	h.documents.handleUpdate(w, r)
}

func (h *CustomerHandler) HandleCustomerDocumentDelete(w http.ResponseWriter, r *http.Request) {
	h.documents.handleDelete(w, r)
}

func (h *CustomerHandler) discardStaged(staged [][]byte) {
	for _, reference := range staged {
		if err := h.Documents.Remove(reference); err != nil {
			h.ErrHandler.ReportServerError(nil, err)
		}
	}
}
