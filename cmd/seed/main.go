package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/config"
	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	repo "github.com/oksasatya/todolist-auth/internal/domain/repository"
	pginfra "github.com/oksasatya/todolist-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

const fixturePassword = "$1234Abcd"

type fixture struct {
	email     string
	roles     []string
	validated bool
}

var fixtures = []fixture{
	{email: "user@todo.list", validated: true},
	{email: "admin@todo.list", roles: []string{entity.RoleAdmin}, validated: true},
	{email: "inactive@todo.list"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	accounts := pginfra.NewAccountRepository(pool)
	hash, err := helpers.HashPassword(fixturePassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	birthDate := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, f := range fixtures {
		if _, err := accounts.FindByEmail(ctx, f.email); err == nil {
			helpers.LogInfo(logger, "fixture already present", logrus.Fields{"email": f.email})
			continue
		} else if !errors.Is(err, repo.ErrAccountNotFound) {
			log.Fatalf("lookup %s: %v", f.email, err)
		}

		a := entity.NewAccount(f.email)
		a.Roles = f.roles
		a.PasswordHash = hash
		if err := a.SetBirthDate(birthDate); err != nil {
			log.Fatalf("fixture %s: %v", f.email, err)
		}
		a.RequestAccountActivation(helpers.NewActivationToken())
		if f.validated {
			a.ValidateAccount()
		}
		if err := accounts.Create(ctx, a); err != nil {
			log.Fatalf("failed to seed %s: %v", f.email, err)
		}
		fmt.Printf("seeded account: id=%s email=%s roles=%v validated=%v password=%s\n", a.ID, a.Email, a.GetRoles(), a.IsAccountValid, fixturePassword)
	}
}
