// Package migrations применяет встроенные в бинарник SQL-миграции схемы
// (таблицы subscription и payment) для SQLite и PostgreSQL.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var sqlFS embed.FS

func driverFor(db *sql.DB, driver string) (database.Driver, string, error) {
	switch driver {
	case "sqlite":
		d, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		return d, "sql/sqlite", err
	case "postgres":
		d, err := pgxv5.WithInstance(db, &pgxv5.Config{})
		return d, "sql/postgres", err
	default:
		return nil, "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// Run накатывает все недостающие миграции для указанного драйвера
// ("sqlite" или "postgres"). Повторный вызов на актуальной схеме ничего не делает.
//
// Экземпляр migrate не закрывается: его Close закрыл бы и переданный *sql.DB.
func Run(db *sql.DB, driver string) error {
	const op = "migrations.Run"

	dbDriver, dir, err := driverFor(db, driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	source, err := iofs.New(sqlFS, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Version возвращает текущую версию схемы и признак незавершённой миграции.
// Для пустой базы возвращается версия 0.
func Version(db *sql.DB, driver string) (uint, bool, error) {
	const op = "migrations.Version"

	dbDriver, _, err := driverFor(db, driver)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	v, dirty, err := dbDriver.Version()
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	if v == database.NilVersion {
		return 0, false, nil
	}
	return uint(v), dirty, nil
}
