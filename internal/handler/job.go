package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kaamwala/kaamwala/internal/cache"
	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/errHandler"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/models"
	"github.com/kaamwala/kaamwala/internal/repository"
	"github.com/kaamwala/kaamwala/internal/request"
	"github.com/kaamwala/kaamwala/internal/response"
	"github.com/kaamwala/kaamwala/internal/stream"
	"github.com/kaamwala/kaamwala/internal/validator"
)

const openJobsCacheTTL = 30 * time.Second

// JobEvent is the payload produced to the job lifecycle topics.
type JobEvent struct {
	JobID    int64 `json:"job_id"`
	WorkerID int64 `json:"worker_id,omitempty"`
}

type OpenJobResponseData struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Budget        float64   `json:"budget"`
	Location      string    `json:"location,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CustomerPic   string    `json:"customerPic,omitempty"`
}

type JobResponseData struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status"`
	WorkerID    int64     `json:"workerId,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobHandler struct {
	JobRepo    repository.JobRepository
	Documents  document.Store
	ErrHandler *errHandler.ErrorHandler
	Helper     *helper.HelperRepository
	Stream     stream.Producer
	Cache      cache.Store
}

func NewJobHandler(handler *JobHandler) *JobHandler {
	return &JobHandler{
		JobRepo:    handler.JobRepo,
		Documents:  handler.Documents,
		ErrHandler: handler.ErrHandler,
		Helper:     handler.Helper,
		Stream:     handler.Stream,
		Cache:      handler.Cache,
	}
}

func (h *JobHandler) HandleJobCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CustomerID  int64               `json:"customerId"`
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Budget      float64             `json:"budget"`
		Location    string              `json:"location"`
		Validator   validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.IsPositive(input.CustomerID), "Customer ID is required")
	input.Validator.Check(validator.NotBlank(input.Title), "Title is required")
	input.Validator.Check(validator.NotBlank(input.Description), "Description is required")
	input.Validator.Check(validator.IsPositive(input.Budget), "Budget is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	job := &models.Job{
		CustomerID:  input.CustomerID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
	}
	if input.Location != "" {
		job.Location.String = input.Location
		job.Location.Valid = true
	}

	id, err := h.JobRepo.Insert(job)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.invalidateOpenJobs(r)
	h.produceJobEvent(r, stream.JobPostedTopic, &JobEvent{JobID: id})

	message := "Job Posted Successfully"
	err = response.JSONCreatedResponse(w, map[string]any{"jobId": id}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *JobHandler) HandleJobAccept(w http.ResponseWriter, r *http.Request) {
	jobID, err := parseIDParam(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	var input struct {
		WorkerID  int64               `json:"workerId"`
		Validator validator.Validator `json:"-"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.IsPositive(input.WorkerID), "Worker ID is required to accept a job")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	// The guarded update decides the race: of any number of concurrent
	// accept attempts on one open job, the database lets exactly one
	// through.
	accepted, err := h.JobRepo.Accept(jobID, input.WorkerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !accepted {
		h.ErrHandler.NotFoundWithMessage(w, r, "Job not found or already assigned")
		return
	}

	h.invalidateOpenJobs(r)
	h.produceJobEvent(r, stream.JobAcceptedTopic, &JobEvent{JobID: jobID, WorkerID: input.WorkerID})

	message := "Job Accepted!"
	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *JobHandler) HandleOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.openJobs()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]OpenJobResponseData, len(jobs))
	for i, job := range jobs {
		data[i] = OpenJobResponseData{
			ID:            job.ID,
			Title:         job.Title,
			Description:   job.Description,
			Budget:        job.Budget,
			Location:      job.Location.String,
			CreatedAt:     job.CreatedAt,
			CustomerName:  job.CustomerName,
			CustomerPhone: job.CustomerPhone,
			CustomerPic:   h.Documents.Resolve(r, job.CustomerPic),
		}
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *JobHandler) HandleCustomerJobs(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseIDParam(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	jobs, err := h.JobRepo.GetAllByCustomer(customerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]JobResponseData, len(jobs))
	for i, job := range jobs {
		data[i] = JobResponseData{
			ID:          job.ID,
			CustomerID:  job.CustomerID,
			Title:       job.Title,
			Description: job.Description,
			Budget:      job.Budget,
			Location:    job.Location.String,
			Status:      job.Status,
			WorkerID:    job.WorkerID.Int64,
			CreatedAt:   job.CreatedAt,
		}
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// openJobs serves the listing from the cache when it can. The cache holds
// the raw joined rows, not the resolved response, so document references
// resolve against the current request. Cache trouble degrades silently to
// the database.
func (h *JobHandler) openJobs() ([]models.OpenJob, error) {
	if h.Cache != nil {
		var cached []models.OpenJob
		found, err := h.Cache.GetJSON(cache.OpenJobsKey, &cached)
		if err == nil && found {
			return cached, nil
		}
	}

	jobs, err := h.JobRepo.GetAllOpen()
	if err != nil {
		return nil, err
	}

	if h.Cache != nil {
		if err := h.Cache.SetJSON(cache.OpenJobsKey, jobs, openJobsCacheTTL); err != nil {
			h.ErrHandler.ReportServerError(nil, err)
		}
	}

	return jobs, nil
}

func (h *JobHandler) invalidateOpenJobs(r *http.Request) {
	if h.Cache == nil {
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		return h.Cache.Delete(cache.OpenJobsKey)
	})
}

func (h *JobHandler) produceJobEvent(r *http.Request, topic string, event *JobEvent) {
	if h.Stream == nil {
		return
	}

	jsonMessage, err := json.Marshal(event)
	if err != nil {
		h.ErrHandler.ReportServerError(r, err)
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		return h.Stream.ProduceMessage(topic, string(jsonMessage))
	})
}
