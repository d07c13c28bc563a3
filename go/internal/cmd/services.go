package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/grouporder/go/internal/auth"
	"github.com/mcdev12/grouporder/go/internal/cart"
	"github.com/mcdev12/grouporder/go/internal/checkout"
	"github.com/mcdev12/grouporder/go/internal/db"
	"github.com/mcdev12/grouporder/go/internal/groups"
	"github.com/mcdev12/grouporder/go/internal/menu"
	"github.com/mcdev12/grouporder/go/internal/participants"
)

type Services struct {
	Groups       *groups.Service
	Participants *participants.Service
	Cart         *cart.Service
	Checkout     *checkout.Service
	Menu         *menu.Service
	Auth         *auth.Service

	MenuApp *menu.App
}

func setupServices(pool *pgxpool.Pool, cfg Config, clock clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer
	queries := db.New(pool)

	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	// Repositories
	groupsRepo := groups.NewRepository(queries)
	participantsRepo := participants.NewRepository(queries)
	cartRepo := cart.NewRepository(queries)
	menuRepo := menu.NewRepository(queries, pool)

	// Groups
	groupsApp := groups.NewApp(groupsRepo, participantsRepo)

	// Participants
	participantsApp := participants.NewApp(participantsRepo, groupsApp)

	// Menu
	menuApp := menu.NewApp(menuRepo)

	// Cart
	cartApp := cart.NewApp(cartRepo, groupsApp, participantsRepo, menuRepo, unit)

	// Checkout
	checkoutApp := checkout.NewApp(groupsRepo, groupsApp, clock)

	// Auth
	signer := auth.NewTokenSigner(cfg.Realtime.JWTSecret, cfg.Realtime.TokenTTL, clock)
	authApp := auth.NewApp(participantsRepo, signer)

	return &Services{
		Groups:       groups.NewService(groupsApp),
		Participants: participants.NewService(participantsApp),
		Cart:         cart.NewService(cartApp),
		Checkout:     checkout.NewService(checkoutApp),
		Menu:         menu.NewService(menuApp),
		Auth:         auth.NewService(authApp),
		MenuApp:      menuApp,
	}, nil
}
