package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/models"
	"github.com/kaamwala/kaamwala/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWorkerRepo implements WorkerRepository but only mocks the needed methods.
type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) Insert(worker *models.Worker) (int64, error) {
	args := m.Called(worker)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkerRepo) GetOne(id int64) (*models.Worker, bool, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Worker), args.Bool(1), args.Error(2)
}

func (m *MockWorkerRepo) GetStatus(id int64) (bool, bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockWorkerRepo) HasDocumentField(field string) bool {
	switch field {
	case repository.DocumentFieldProfilePic, repository.DocumentFieldCnicFront, repository.DocumentFieldCnicBack,
		repository.DocumentFieldWorkCert, repository.DocumentFieldLicense, repository.DocumentFieldLicenseBack:
		return true
	}
	return false
}

func (m *MockWorkerRepo) GetDocument(id int64, field string) ([]byte, bool, error) {
	args := m.Called(id, field)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockWorkerRepo) UpdateDocument(id int64, field string, reference []byte) (bool, error) {
	args := m.Called(id, field, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkerRepo) ClearDocument(id int64, field string) (bool, error) {
	args := m.Called(id, field)
	return args.Bool(0), args.Error(1)
}

func newWorkerHandler(repo *MockWorkerRepo) *WorkerHandler {
	errH := newTestErrHandler()
	baseURL := "http://localhost"

	return NewWorkerHandler(&WorkerHandler{
		WorkerRepo: repo,
		Documents:  document.NewBlobStore(),
		ErrHandler: errH,
		Helper:     helper.New(&baseURL, &sync.WaitGroup{}, errH),
	})
}

func TestHandleWorkerCreate_Success(t *testing.T) {
	mockRepo := new(MockWorkerRepo)
	mockRepo.On("Insert", mock.AnythingOfType("*models.Worker")).Return(int64(7), nil)

	h := newWorkerHandler(mockRepo)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, value := range map[string]string{
		"fullName":       "Bilal Hussain",
		"cnic":           "35201-7654321-3",
		"phone":          "0333-7654321",
		"city":           "Karachi",
		"skill":          "electrician",
		"availableHours": "9am-6pm",
		"about":          "10 years of house wiring",
	} {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("license", "license.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("license scan"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := httptest.NewRequest("POST", "/api/worker", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	h.HandleWorkerCreate(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	require.Equal(t, "Worker registered successfully", env.Message)

	var data struct {
		WorkerID int64 `json:"workerId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, int64(7), data.WorkerID)

	insertedWorker := mockRepo.Calls[0].Arguments.Get(0).(*models.Worker)
	require.Equal(t, "electrician", insertedWorker.Skill)
	require.True(t, insertedWorker.About.Valid)
	require.Equal(t, []byte("license scan"), insertedWorker.License)
	require.Nil(t, insertedWorker.WorkCert)
}

func TestHandleWorkerCreate_MissingFields(t *testing.T) {
	mockRepo := new(MockWorkerRepo)
	h := newWorkerHandler(mockRepo)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("fullName", "Bilal Hussain"))
	require.NoError(t, writer.WriteField("city", "Karachi"))
	require.NoError(t, writer.Close())

	r := httptest.NewRequest("POST", "/api/worker", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	h.HandleWorkerCreate(rec, r)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestHandleWorkerStatus(t *testing.T) {
	mockRepo := new(MockWorkerRepo)
	mockRepo.On("GetStatus", int64(7)).Return(true, true, nil)

	h := newWorkerHandler(mockRepo)

	r := httptest.NewRequest("GET", "/api/worker/7/status", nil)
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleWorkerStatus(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		WorkerFormCompleted bool `json:"workerFormCompleted"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	require.True(t, data.WorkerFormCompleted)
}

func TestHandleWorkerStatus_NotFound(t *testing.T) {
	mockRepo := new(MockWorkerRepo)
	mockRepo.On("GetStatus", int64(99)).Return(false, false, nil)

	h := newWorkerHandler(mockRepo)

	r := httptest.NewRequest("GET", "/api/worker/99/status", nil)
	r.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	h.HandleWorkerStatus(rec, r)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Worker not found", decodeEnvelope(t, rec).Message)
}

func TestHandleWorkerStatus_BadID(t *testing.T) {
	h := newWorkerHandler(new(MockWorkerRepo))

	r := httptest.NewRequest("GET", "/api/worker/abc/status", nil)
	r.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	h.HandleWorkerStatus(rec, r)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWorkerDocumentUpdate_WorkerField(t *testing.T) {
	// workCert is valid on workers even though customers reject it
	mockRepo := new(MockWorkerRepo)
	mockRepo.On("GetDocument", int64(7), "workCert").Return([]byte("old cert"), true, nil)
	mockRepo.On("UpdateDocument", int64(7), "workCert", []byte("new cert")).Return(true, nil)

	h := newWorkerHandler(mockRepo)

	body, contentType := multipartFileBody(t, "file", "cert.pdf", []byte("new cert"))
	r := httptest.NewRequest("PUT", "/api/worker/7/documents?field=workCert", body)
	r.Header.Set("Content-Type", contentType)
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleWorkerDocumentUpdate(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Document updated successfully", decodeEnvelope(t, rec).Message)

	mockRepo.AssertExpectations(t)
}

func TestHandleWorkerDocumentDelete(t *testing.T) {
	mockRepo := new(MockWorkerRepo)
	mockRepo.On("GetDocument", int64(7), "license").Return([]byte("license scan"), true, nil)
	mockRepo.On("ClearDocument", int64(7), "license").Return(true, nil)

	h := newWorkerHandler(mockRepo)

	r := httptest.NewRequest("DELETE", "/api/worker/7/documents?field=license", nil)
	r.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	h.HandleWorkerDocumentDelete(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "File deleted successfully", decodeEnvelope(t, rec).Message)

	mockRepo.AssertExpectations(t)
}
