package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/config"
	"github.com/oksasatya/votiy-api/internal/observability"
	"github.com/oksasatya/votiy-api/pkg/helpers"
	"github.com/oksasatya/votiy-api/pkg/mailer"
)

// outcome of one delivery; the worker acks, drops or requeues accordingly.
type outcome string

const (
	outcomeSent    outcome = "sent"
	outcomeDropped outcome = "dropped"
	outcomeRetry   outcome = "retry"
)

// process decodes and delivers one queued job. Malformed or unrenderable jobs
// are dropped; send failures are retried.
func process(ctx context.Context, s mailer.Sender, body []byte, logger logrus.FieldLogger) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("bad email job")
		observability.EmailJobs.WithLabelValues("unknown", string(outcomeDropped)).Inc()
		return outcomeDropped
	}
	job.Normalize()
	tpl := job.Template
	if tpl == "" {
		tpl = "raw"
	}
	log := logger.WithFields(logrus.Fields{"to": job.To, "template": tpl})

	if err := job.Validate(); err != nil {
		log.WithError(err).Warn("invalid email job")
		observability.EmailJobs.WithLabelValues(tpl, string(outcomeDropped)).Inc()
		return outcomeDropped
	}
	subject, text, html, err := job.Content()
	if err != nil {
		log.WithError(err).Error("render failed")
		observability.EmailJobs.WithLabelValues(tpl, string(outcomeDropped)).Inc()
		return outcomeDropped
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.Send(c, job.To, subject, text, html); err != nil {
		log.WithError(err).Error("send failed")
		observability.EmailJobs.WithLabelValues(tpl, string(outcomeRetry)).Inc()
		return outcomeRetry
	}
	log.Info("email sent")
	observability.EmailJobs.WithLabelValues(tpl, string(outcomeSent)).Inc()
	return outcomeSent
}

func settle(msg amqp.Delivery, o outcome) {
	switch o {
	case outcomeSent:
		_ = msg.Ack(false)
	case outcomeRetry:
		_ = msg.Nack(false, true)
	default:
		_ = msg.Nack(false, false)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	q, err := helpers.NewRabbitQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		logger.WithError(err).Fatal("rabbitmq connect")
	}
	defer q.Close()

	msgs, err := q.Consume(16)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			settle(msg, process(ctx, mg, msg.Body, logger))
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
