package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/todolist-auth/config"
	"github.com/oksasatya/todolist-auth/internal/infrastructure/storage"
	"github.com/oksasatya/todolist-auth/internal/worker"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailFrom == "" {
		log.Fatal("Mailgun not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue, err := helpers.NewRabbitQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer queue.Close()

	// prefetch keeps dispatch fair between worker replicas
	msgs, err := queue.Consume(cfg.EmailWorkerPrefetch)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	var archive worker.Archiver
	if cfg.GCSMailArchiveBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		archive = storage.NewMailArchive(gcsClient, cfg.GCSMailArchiveBucket)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom, cfg.MailgunAPIBase)
	w := worker.NewEmailWorker(mg, archive, logger)

	done := make(chan struct{})
	go func() {
		w.Run(ctx, msgs)
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case <-done:
		logger.Error("delivery channel closed")
		return
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
