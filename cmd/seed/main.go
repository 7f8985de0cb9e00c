// Command seed provisions the default administrator plus a couple of
// fixture accounts and tickets for local development. Existing usernames
// are skipped, so rerunning is harmless.
package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"

	"github.com/telecel/helpdesk/internal/config"
	"github.com/telecel/helpdesk/internal/domain"
	"github.com/telecel/helpdesk/internal/observability"
	"github.com/telecel/helpdesk/internal/persistence"
	"github.com/telecel/helpdesk/internal/repository"
	"github.com/telecel/helpdesk/internal/service"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

type seedUser struct {
	service.CreateUserInput
	tickets []service.TicketCreateInput
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	ticketRepo := repository.NewTicketRepository(pg.PoolHandle())
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	ticketService := service.NewTicketService(ticketRepo, userRepo, nil)

	seeds := []seedUser{
		{
			CreateUserInput: service.CreateUserInput{
				Username:   "admin",
				FullName:   "System Administrator",
				Department: "IT Support",
				Email:      "admin@telecel.com",
				Role:       domain.RoleAdmin,
				Password:   "admin123",
			},
		},
		{
			CreateUserInput: service.CreateUserInput{
				Username:   "john.doe",
				FullName:   "John Doe",
				Department: "Sales",
				Email:      "john.doe@telecel.com",
				Role:       domain.RoleUser,
				Password:   "password123",
			},
			tickets: []service.TicketCreateInput{{
				Title:       "Cannot access CRM",
				Description: "When I try to login to the CRM portal, it gives a 502 Bad Gateway error.",
				Department:  "Sales",
			}},
		},
		{
			CreateUserInput: service.CreateUserInput{
				Username:   "jane.smith",
				FullName:   "Jane Smith",
				Department: "HR",
				Email:      "jane.smith@telecel.com",
				Role:       domain.RoleUser,
				Password:   "password123",
			},
			tickets: []service.TicketCreateInput{{
				Title:       "Printer Jam on 2nd Floor",
				Description: "The main network printer is jamming repeatedly with error code E-45.",
				Department:  "HR",
			}},
		},
	}

	for _, seed := range seeds {
		user, err := userService.CreateUser(ctx, seed.CreateUserInput)
		if err != nil {
			if isDuplicate(err) {
				logger.Info("user already seeded", zap.String("username", seed.Username))
				continue
			}
			logger.Fatal("failed to seed user", zap.String("username", seed.Username), zap.Error(err))
		}
		logger.Info("seeded user", zap.String("username", user.Username), zap.String("id", user.ID))

		for _, ticketInput := range seed.tickets {
			ticketInput.UserID = user.ID
			ticket, err := ticketService.CreateTicket(ctx, ticketInput)
			if err != nil {
				logger.Fatal("failed to seed ticket", zap.String("title", ticketInput.Title), zap.Error(err))
			}
			logger.Info("seeded ticket", zap.String("id", ticket.ID), zap.String("title", ticket.Title))
		}
	}
}

func isDuplicate(err error) bool {
	var domainErr *apperrors.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "DUPLICATE"
}
