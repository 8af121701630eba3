package app

import (
	"net/http"

	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/handler"
	"github.com/kaamwala/kaamwala/internal/middleware"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	middlewareRepo := middleware.New(app.ErrorHandler, app.Logger)

	healthHandler := handler.NewHealthCheckHandler(app.ErrorHandler)

	customerHandler := handler.NewCustomerHandler(&handler.CustomerHandler{
		CustomerRepo: app.DB.Customer(),
		Documents:    app.Documents,
		ErrHandler:   app.ErrorHandler,
		Helper:       app.Helper,
	})

	workerHandler := handler.NewWorkerHandler(&handler.WorkerHandler{
		WorkerRepo: app.DB.Worker(),
		Documents:  app.Documents,
		ErrHandler: app.ErrorHandler,
		Helper:     app.Helper,
	})

	jobHandler := handler.NewJobHandler(&handler.JobHandler{
		JobRepo:    app.DB.Job(),
		Documents:  app.Documents,
		ErrHandler: app.ErrorHandler,
		Helper:     app.Helper,
		Stream:     app.Kafka,
		Cache:      app.Cache,
	})

	mux.HandleFunc("GET /status", healthHandler.HandleHealthCheck)

	mux.HandleFunc("POST /api/customer", customerHandler.HandleCustomerCreate)
	mux.HandleFunc("GET /api/customer/{id}", customerHandler.HandleCustomerGet)
	mux.HandleFunc("PUT /api/customer/{id}/documents", customerHandler.HandleCustomerDocumentUpdate)
	mux.HandleFunc("DELETE /api/customer/{id}/documents", customerHandler.HandleCustomerDocumentDelete)

	mux.HandleFunc("POST /api/worker", workerHandler.HandleWorkerCreate)
	mux.HandleFunc("GET /api/worker/{id}", workerHandler.HandleWorkerGet)
	mux.HandleFunc("GET /api/worker/{id}/status", workerHandler.HandleWorkerStatus)
	mux.HandleFunc("PUT /api/worker/{id}/documents", workerHandler.HandleWorkerDocumentUpdate)
	mux.HandleFunc("DELETE /api/worker/{id}/documents", workerHandler.HandleWorkerDocumentDelete)

	mux.HandleFunc("POST /api/jobs", jobHandler.HandleJobCreate)
	mux.HandleFunc("PUT /api/jobs/{id}/accept", jobHandler.HandleJobAccept)
	mux.HandleFunc("GET /api/jobs/open", jobHandler.HandleOpenJobs)
	mux.HandleFunc("GET /api/jobs/customer/{id}", jobHandler.HandleCustomerJobs)

	// disk-stored documents are served straight from the uploads directory
	if app.Config.Storage.Mode == document.ModeDisk {
		fileServer := http.FileServer(http.Dir(app.Config.Storage.UploadDir))
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", fileServer))
	}

	return middlewareRepo.LogAccess(middlewareRepo.RecoverPanic(middlewareRepo.EnableCORS(mux)))
}
