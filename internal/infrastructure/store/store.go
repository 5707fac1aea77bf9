// Package store elige la implementación de repositorios según DB_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/remitos-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/remitos-api/pkg/config"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// Repositories conjunto de repositorios de un mismo almacenamiento.
type Repositories struct {
	Companies  repository.CompanyRepository
	Statuses   repository.StatusRepository
	Remitos    repository.RemitoRepository
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Clients    repository.ClientRepository
	Analytics  repository.AnalyticsRepository

	close func()
}

// Close libera el pool o la conexión subyacente.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta al almacenamiento configurado. Con postgres y AutoMigrate aplica el esquema embebido;
// sqlite migra siempre vía gorm.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("almacenamiento sqlite listo")
		return &Repositories{
			Companies:  sqlite.NewCompanyRepository(db),
			Statuses:   sqlite.NewStatusRepository(db),
			Remitos:    sqlite.NewRemitoRepository(db),
			Products:   sqlite.NewProductRepository(db),
			Categories: sqlite.NewCategoryRepository(db),
			Clients:    sqlite.NewClientRepository(db),
			Analytics:  sqlite.NewAnalyticsRepository(db),
			close:      func() { _ = sqlite.Close(db) },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("esquema aplicado")
		}
		return &Repositories{
			Companies:  postgres.NewCompanyRepository(pool),
			Statuses:   postgres.NewStatusRepository(pool),
			Remitos:    postgres.NewRemitoRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Clients:    postgres.NewClientRepository(pool),
			Analytics:  postgres.NewAnalyticsRepository(pool),
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("store: driver no soportado %q", cfg.Driver)
	}
}
