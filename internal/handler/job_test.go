package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/errHandler"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/models"
	"github.com/kaamwala/kaamwala/internal/stream"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockJobRepo implements JobRepository but only mocks the needed methods.
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Insert(job *models.Job) (int64, error) {
	args := m.Called(job)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepo) GetOne(id int64) (*models.Job, bool, error) {
	return nil, false, nil
}

func (m *MockJobRepo) Accept(jobID, workerID int64) (bool, error) {
	args := m.Called(jobID, workerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepo) GetAllOpen() ([]models.OpenJob, error) {
	args := m.Called()
	return args.Get(0).([]models.OpenJob), args.Error(1)
}

func (m *MockJobRepo) GetAllByCustomer(customerID int64) ([]models.Job, error) {
	args := m.Called(customerID)
	return args.Get(0).([]models.Job), args.Error(1)
}

type producedMessage struct {
	topic   string
	message string
}

// MockStreamProducer records produced messages in place of kafka.
type MockStreamProducer struct {
	produced []producedMessage
}

func (m *MockStreamProducer) ProduceMessage(topic, message string) error {
	m.produced = append(m.produced, producedMessage{topic: topic, message: message})
	return nil
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestErrHandler() *errHandler.ErrorHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return errHandler.New("", "http://localhost", nil, logger)
}

func newJobHandler(repo *MockJobRepo) *JobHandler {
	return NewJobHandler(&JobHandler{
		JobRepo:    repo,
		Documents:  document.NewBlobStore(),
		ErrHandler: newTestErrHandler(),
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleJobCreate_Success(t *testing.T) {
	mockRepo := new(MockJobRepo)
	mockRepo.On("Insert", mock.AnythingOfType("*models.Job")).Return(int64(42), nil)

	h := newJobHandler(mockRepo)

	body := `{"customerId": 1, "title": "Fix sink", "description": "Leaking pipe", "budget": 2000}`
	r := httptest.NewRequest("POST", "/api/jobs", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.HandleJobCreate(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.Equal(t, "Job Posted Successfully", env.Message)

	var data struct {
		JobID int64 `json:"jobId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, int64(42), data.JobID)

	mockRepo.AssertExpectations(t)
}

func TestHandleJobCreate_MissingFields(t *testing.T) {
	mockRepo := new(MockJobRepo)
	h := newJobHandler(mockRepo)

	body := `{"title": "Fix sink"}`
	r := httptest.NewRequest("POST", "/api/jobs", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.HandleJobCreate(rec, r)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestHandleJobAccept_Success(t *testing.T) {
	mockRepo := new(MockJobRepo)
	mockRepo.On("Accept", int64(7), int64(3)).Return(true, nil)

	h := newJobHandler(mockRepo)

	r := httptest.NewRequest("PUT", "/api/jobs/7/accept", bytes.NewBufferString(`{"workerId": 3}`))
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleJobAccept(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Job Accepted!", decodeEnvelope(t, rec).Message)

	mockRepo.AssertExpectations(t)
}

func TestHandleJobAccept_MissingWorkerID(t *testing.T) {
	mockRepo := new(MockJobRepo)
	h := newJobHandler(mockRepo)

	r := httptest.NewRequest("PUT", "/api/jobs/7/accept", bytes.NewBufferString(`{}`))
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleJobAccept(rec, r)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestHandleJobAccept_PublishesEvent(t *testing.T) {
	mockRepo := new(MockJobRepo)
	mockRepo.On("Accept", int64(7), int64(3)).Return(true, nil)

	producer := &MockStreamProducer{}
	errH := newTestErrHandler()
	baseURL := "http://localhost"

	var wg sync.WaitGroup

	h := NewJobHandler(&JobHandler{
		JobRepo:    mockRepo,
		Documents:  document.NewBlobStore(),
		ErrHandler: errH,
		Helper:     helper.New(&baseURL, &wg, errH),
		Stream:     producer,
	})

	r := httptest.NewRequest("PUT", "/api/jobs/7/accept", bytes.NewBufferString(`{"workerId": 3}`))
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleJobAccept(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)

	wg.Wait()

	// the event lands on the topic the job-accepted consumer subscribes to
	require.Len(t, producer.produced, 1)
	require.Equal(t, stream.JobAcceptedTopic, producer.produced[0].topic)

	var event JobEvent
	require.NoError(t, json.Unmarshal([]byte(producer.produced[0].message), &event))
	require.Equal(t, int64(7), event.JobID)
	require.Equal(t, int64(3), event.WorkerID)
}

func TestHandleJobAccept_NotOpen(t *testing.T) {
	// covers both a missing job and an already-assigned one: the guarded
	// update cannot tell them apart
	mockRepo := new(MockJobRepo)
	mockRepo.On("Accept", int64(7), int64(3)).Return(false, nil)

	h := newJobHandler(mockRepo)

	r := httptest.NewRequest("PUT", "/api/jobs/7/accept", bytes.NewBufferString(`{"workerId": 3}`))
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleJobAccept(rec, r)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Job not found or already assigned", decodeEnvelope(t, rec).Message)
}

func TestHandleOpenJobs(t *testing.T) {
	now := time.Now()

	openJobs := []models.OpenJob{
		{ID: 2, Title: "Paint fence", Budget: 5000, CreatedAt: now, CustomerName: "Ahmed", CustomerPhone: "0300-1234567", CustomerPic: []byte{0x1}},
		{ID: 1, Title: "Fix sink", Budget: 2000, CreatedAt: now.Add(-time.Hour), CustomerName: "Bilal", CustomerPhone: "0301-7654321"},
	}

	mockRepo := new(MockJobRepo)
	mockRepo.On("GetAllOpen").Return(openJobs, nil)

	h := newJobHandler(mockRepo)

	r := httptest.NewRequest("GET", "/api/jobs/open", nil)
	rec := httptest.NewRecorder()

	h.HandleOpenJobs(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)

	var data []OpenJobResponseData
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	require.Len(t, data, 2)

	// repository ordering (created_at DESC) is preserved
	require.Equal(t, int64(2), data[0].ID)
	require.Equal(t, "Ahmed", data[0].CustomerName)
	require.NotEmpty(t, data[0].CustomerPic)
	require.Equal(t, int64(1), data[1].ID)
	require.Empty(t, data[1].CustomerPic)
}

func TestHandleCustomerJobs(t *testing.T) {
	jobs := []models.Job{
		{ID: 9, CustomerID: 4, Title: "Paint fence", Budget: 5000, Status: "assigned"},
		{ID: 3, CustomerID: 4, Title: "Fix sink", Budget: 2000, Status: "open"},
	}

	mockRepo := new(MockJobRepo)
	mockRepo.On("GetAllByCustomer", int64(4)).Return(jobs, nil)

	h := newJobHandler(mockRepo)

	r := httptest.NewRequest("GET", "/api/jobs/customer/4", nil)
	r.SetPathValue("id", "4")
	rec := httptest.NewRecorder()

	h.HandleCustomerJobs(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)

	var data []JobResponseData
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	require.Len(t, data, 2)
	require.Equal(t, "assigned", data[0].Status)
	require.Equal(t, "open", data[1].Status)
}
