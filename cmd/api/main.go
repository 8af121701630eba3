package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/kaamwala/kaamwala/internal/app"
	"github.com/kaamwala/kaamwala/internal/version"
	"github.com/kaamwala/kaamwala/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}
	defer application.DB.Close()
	defer application.Cache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wkr := worker.New(&worker.Worker{
		KafkaStream:       application.Kafka,
		DB:                application.DB,
		Cache:             application.Cache,
		Mailer:            application.Mailer,
		Helper:            application.Helper,
		NotificationEmail: application.Config.Notifications.Email,
		Ctx:               ctx,
	})

	go wkr.JobAcceptedWorker()

	return application.ServeHTTP()
}
