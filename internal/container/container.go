package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gopower/adapters/docs"
	"gopower/adapters/excel"
	"gopower/adapters/postgres"
	"gopower/app"
	"gopower/internal"
	"gopower/internal/config"
	"gopower/internal/migration"
	"gopower/ports"
)

// Container holds all application dependencies and manages their lifecycle.
// The database is optional: without DATABASE_URL the services run without
// calculation history.
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	DB *sqlx.DB

	CalculationRepo ports.CalculationRepository

	Calculations *app.CalculationService
	Sweeps       *app.SweepService
	Exporter     *excel.SweepWriter
	Docs         *docs.Renderer
}

// New builds the container, connecting to the database when one is
// configured and running migrations on it.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewDefaultLogger(),
	}

	if cfg.Database.URL != "" {
		if err := c.initDatabase(); err != nil {
			return nil, err
		}
	} else {
		c.Logger.Info("no DATABASE_URL configured, running without history")
	}

	c.Docs = docs.NewRenderer()
	c.Exporter = excel.NewSweepWriter(cfg.Export.Dir)
	c.Calculations = app.NewCalculationService(c.CalculationRepo, c.Logger.Named("calc"))
	c.Sweeps = app.NewSweepService(cfg.Sweep.MaxPoints, cfg.Sweep.Workers, c.Logger.Named("sweep"))

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := sqlx.Connect("postgres", c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("migrations failed: %w", err)
	}
	c.Logger.Info("database ready, schema version %s", runner.Version())

	c.DB = db
	c.CalculationRepo = postgres.NewCalculationRepository(db)
	return nil
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
