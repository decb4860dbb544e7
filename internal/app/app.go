package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/resolveapp/resolve/internal/config"
	"github.com/resolveapp/resolve/internal/db"
	"github.com/resolveapp/resolve/internal/feedback"
	"github.com/resolveapp/resolve/internal/quote"
	"github.com/resolveapp/resolve/internal/reminder"
	"github.com/resolveapp/resolve/internal/repository"
	"github.com/resolveapp/resolve/internal/store"
)

type App struct {
	Cfg       *config.Config
	DB        *sqlx.DB
	Store     *store.Store
	Reminders *reminder.Scheduler
	Quotes    *quote.Service
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	orderRepository := repository.NewOrderRepository(database)

	// Collaborators
	reminders := reminder.NewScheduler(reminder.LogNotifier{})
	quotes, err := quote.NewService(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote decks: %v", err)
	}

	// Goal store: load the collection into memory and resync reminders
	goalStore := store.New(goalRepository, orderRepository, reminders, feedback.Logger{})
	err = goalStore.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize goal store: %v", err)
	}
	reminders.Start()

	return &App{
		Cfg:       cfg,
		DB:        database,
		Store:     goalStore,
		Reminders: reminders,
		Quotes:    quotes,
	}, nil
}

func (a *App) Close() error {
	if a.Reminders != nil {
		a.Reminders.Stop()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
