package postgres

import (
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registra el driver pgx en database/sql
	"github.com/pressly/goose/v3"

	"github.com/apetrovv/warehouse-api/pkg/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate aplica las migraciones embebidas con goose sobre una conexión
// database/sql derivada del DSN de la app.
func Migrate(cfg config.DBConfig) error {
	db, err := goose.OpenDBWithDriver("pgx", cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("abrir conexión para migraciones: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("dialecto goose: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
