package repos

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers "sqlite"

	"stockroom/internal/domain"
	applog "stockroom/internal/log"
)

// OpenDB connects with driver ("sqlite" or "pgx") and makes sure the schema exists.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		dsn = sqliteDSN(dsn)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// One connection: ":memory:" is per connection.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return db, nil
}

// sqliteDSN makes every new connection enable foreign keys, so the category
// cascade survives the pool replacing a broken connection.
func sqliteDSN(dsn string) string {
	const fk = "_pragma=foreign_keys(1)"
	if strings.Contains(dsn, fk) {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + fk
	}
	return dsn + "?" + fk
}

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categories(
  id   INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  name        TEXT NOT NULL DEFAULT '',
  price       REAL NOT NULL DEFAULT 0,
  stock       INTEGER NOT NULL DEFAULT 0,
  color       TEXT NOT NULL DEFAULT '',
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS categories(
  id   BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  id          BIGSERIAL PRIMARY KEY,
  name        TEXT NOT NULL DEFAULT '',
  price       DOUBLE PRECISION NOT NULL DEFAULT 0,
  stock       INTEGER NOT NULL DEFAULT 0,
  color       TEXT NOT NULL DEFAULT '',
  category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
`

func ensureSchema(db *sqlx.DB, driver string) error {
	schema := sqliteSchema
	if driver == "pgx" {
		schema = postgresSchema
	}
	_, err := db.Exec(schema)
	return err
}

// SeedIfEmpty inserts the demo catalog when there are no categories yet.
// It goes through the repositories so every backend is seeded the same way.
func SeedIfEmpty(ctx context.Context, s *Store) error {
	cats, err := s.Categories.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(cats) > 0 {
		return nil
	}

	applog.Info(nil, "seed.insert", map[string]any{"what": "demo categories/products"})

	pens := domain.Category{Name: "Kalemler"}
	notebooks := domain.Category{Name: "Defterler"}
	for _, c := range []*domain.Category{&pens, &notebooks} {
		if err := s.Categories.Create(ctx, c); err != nil {
			return err
		}
	}

	products := []domain.Product{
		{Name: "kalem 10", Price: 100, Stock: 50, Color: "Kirmizi", CategoryID: pens.ID},
		{Name: "kalem 20", Price: 100, Stock: 500, Color: "Mavi", CategoryID: notebooks.ID},
	}
	for i := range products {
		if err := s.Products.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}
