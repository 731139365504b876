package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/config"
	"github.com/oksasatya/votiy-api/internal/application"
	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
	pginfra "github.com/oksasatya/votiy-api/internal/infrastructure/postgres"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

const (
	demoEmail    = "demo@votiy.dev"
	demoPassword = "password123"
	demoPoll     = "What should we build next?"
)

// seed inserts a demo user and one public poll owned by it. Running it again changes nothing.
func seed(ctx context.Context, users repo.UserRepository, polls repo.PollRepository, logger logrus.FieldLogger) (*entity.User, *entity.Poll, error) {
	userSvc := application.NewUserService(users, nil, logger)
	u, err := userSvc.Create(ctx, application.CreateUserInput{
		Email:     demoEmail,
		Password:  demoPassword,
		FirstName: "Demo",
		LastName:  "User",
	})
	if errors.Is(err, application.ErrEmailTaken) {
		u, err = users.GetByEmail(ctx, demoEmail)
	}
	if err != nil {
		return nil, nil, err
	}

	pollSvc := application.NewPollService(polls, nil, nil, logger)
	mine, err := pollSvc.ListByCreator(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	for i := range mine {
		if mine[i].Title == demoPoll {
			return u, &mine[i], nil
		}
	}

	p, err := pollSvc.Create(ctx, u.ID, application.CreatePollInput{
		Title:       demoPoll,
		Description: "A sample poll created by the seeder",
		Options: []application.OptionInput{
			{Text: "Mobile app", OrderIndex: 0},
			{Text: "Poll templates", OrderIndex: 1},
			{Text: "Result exports", OrderIndex: 2},
		},
	})
	return u, p, err
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	u, p, err := seed(ctx, pginfra.NewUserRepository(pool), pginfra.NewPollRepository(pool), logger)
	if err != nil {
		logger.WithError(err).Fatal("seed failed")
	}
	logger.WithFields(logrus.Fields{
		"user_id":  u.ID,
		"email":    u.Email,
		"password": demoPassword,
		"poll_id":  p.ID,
	}).Info("seeded demo data")
}
