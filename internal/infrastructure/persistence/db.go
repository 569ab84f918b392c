package persistence

import (
	"context"
	"fmt"

	gormpg "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// Store agrupa el handle del ORM y los recursos que hay que liberar al cerrar.
type Store struct {
	DB      *gorm.DB
	closers []func()
}

// Close libera conexiones en orden inverso de apertura.
func (s *Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// Open abre el almacén según cfg.Driver. PostgreSQL usa el pool pgx; SQLite usa una sola conexión
// (escrituras serializadas) con claves foráneas activas.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	gcfg := &gorm.Config{
		Logger:         NewGormLogger(log, cfg.SlowQuery),
		TranslateError: true,
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		sqlDB := postgres.SQLDB(pool)
		db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), gcfg)
		if err != nil {
			_ = sqlDB.Close()
			pool.Close()
			return nil, fmt.Errorf("abrir gorm (postgres): %w", err)
		}
		return &Store{DB: db, closers: []func(){pool.Close, func() { _ = sqlDB.Close() }}}, nil

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLiteDSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("abrir gorm (sqlite): %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("ping DB: %w", err)
		}
		return &Store{DB: db, closers: []func(){func() { _ = sqlDB.Close() }}}, nil
	}
	return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
}

// Migrate crea o ajusta el esquema del catálogo (tablas, índices y FK con borrado en cascada).
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&entity.Category{}, &entity.Product{}); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
