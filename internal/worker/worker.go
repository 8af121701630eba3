package worker

import (
	"context"

	"github.com/kaamwala/kaamwala/internal/cache"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/repository"
	"github.com/kaamwala/kaamwala/internal/smtp"
	"github.com/kaamwala/kaamwala/internal/stream"
)

type Worker struct {
	KafkaStream       *stream.KafkaStream
	DB                repository.Database
	Cache             *cache.Cache
	Mailer            smtp.MailerInterface
	Helper            *helper.HelperRepository
	NotificationEmail string
	Ctx               context.Context
}

// jobAcceptedGroupID is used by workers that react whenever an open
// job has been taken by a worker.
const jobAcceptedGroupID = "job-accepted-group"

// Workers typically need the database, the cache and the kafka event stream
// worker-specific dependencies can be passed as argument to the worker
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream:       wk.KafkaStream,
		DB:                wk.DB,
		Cache:             wk.Cache,
		Mailer:            wk.Mailer,
		Helper:            wk.Helper,
		NotificationEmail: wk.NotificationEmail,
		Ctx:               wk.Ctx,
	}
}
