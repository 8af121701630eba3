package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/kaamwala/kaamwala/internal/cache"
	"github.com/kaamwala/kaamwala/internal/config"
	"github.com/kaamwala/kaamwala/internal/document"
	"github.com/kaamwala/kaamwala/internal/env"
	"github.com/kaamwala/kaamwala/internal/errHandler"
	"github.com/kaamwala/kaamwala/internal/helper"
	"github.com/kaamwala/kaamwala/internal/repository"
	"github.com/kaamwala/kaamwala/internal/smtp"
	"github.com/kaamwala/kaamwala/internal/stream"
	"github.com/joho/godotenv"
)

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items and when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	ErrorHandler *errHandler.ErrorHandler
	Helper       *helper.HelperRepository
	Kafka        *stream.KafkaStream
	Cache        *cache.Cache
	Documents    document.Store
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", "error", err)
	}

	var cfg config.Config

	// config values are loaded from the .env file
	// Default values are provided for these items and these should strictly be values for development mode only
	// make sure no production-level value is exposed as default value here
	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/db")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)

	cfg.Storage.Mode = env.GetString("STORAGE_MODE", document.ModeDisk)
	cfg.Storage.UploadDir = env.GetString("UPLOAD_DIR", "uploads")

	// server errors won't be sent via email if the NOTIFICATIONS_EMAIL wasn't set in the .env file
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Example Name <no_reply@example.org>")

	cfg.RedisAddr = env.GetString("REDIS_ADDR", "localhost:6379")
	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")

	cfg.Cloudinary.ApiKey = env.GetString("CLOUDINARY_API_KEY", "")
	cfg.Cloudinary.CloudName = env.GetString("CLOUDINARY_CLOUD_NAME", "")
	cfg.Cloudinary.ApiSecret = env.GetString("CLOUDINARY_API_SECRET", "")

	// serving must not start without a reachable database
	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	documents, err := document.New(
		cfg.Storage.Mode,
		cfg.Storage.UploadDir,
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	app := &Application{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		Mailer:    mailer,
		Kafka:     stream.New(cfg.KafkaServers),
		Cache:     cache.New(cfg.RedisAddr, 0),
		Documents: documents,
	}

	app.ErrorHandler = errHandler.New(cfg.Notifications.Email, cfg.BaseURL, mailer, logger)
	app.Helper = helper.New(&app.Config.BaseURL, &app.WG, app.ErrorHandler)

	return app, nil
}
