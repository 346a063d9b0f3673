// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/database"
	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/router"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/storage"
)

// App wires the catalog services shared by the server and the CLI.
type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Slot    storage.Slot
	Product *services.ProductService
	Audit   *services.AuditService
	Storage *services.StorageService
	Auth    *services.AuthService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cfg.Log.ConfigureLogger()

	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		return nil, fmt.Errorf("failed to initialize i18n: %w", err)
	}

	a := &App{Config: cfg}

	if cfg.NeedsDatabase() {
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		a.DB = db

		if err := database.RunMigrations(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	slot, err := storage.Open(ctx, cfg, a.DB)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	a.Slot = slot

	var auditDB *gorm.DB
	if cfg.Database.AuditEnabled {
		auditDB = a.DB
	}
	a.Audit = services.NewAuditService(auditDB)

	opts := services.StoreOptions{
		StartEmptyOnCorrupt: cfg.Store.StartEmptyOnCorrupt,
		SeedDemoOnEmpty:     cfg.Store.SeedDemoOnEmpty,
	}
	if a.Audit.Enabled() {
		opts.Audit = a.Audit
	}

	a.Product, err = services.NewProductService(ctx, slot, opts)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a.Storage, err = services.NewStorageService(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Auth = services.NewAuthService(cfg.Auth)

	logrus.WithFields(logrus.Fields{
		"backend":  cfg.Store.Backend,
		"key":      cfg.Store.Key,
		"products": a.Product.Count(),
		"audit":    a.Audit.Enabled(),
	}).Info("Catalog loaded")

	return a, nil
}

// Engine builds the HTTP router over the app's services.
func (a *App) Engine() *gin.Engine {
	return router.Initialize(a.Config, router.Services{
		Product: a.Product,
		Audit:   a.Audit,
		Storage: a.Storage,
		Auth:    a.Auth,
	})
}

func (a *App) Close() {
	if a.Slot != nil {
		if err := a.Slot.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close store")
		}
	}
	if a.DB != nil {
		database.Close(a.DB)
	}
}
