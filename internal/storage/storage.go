// Package storage реализует хранилище подписок и платежей поверх database/sql.
// Поддерживаются два драйвера: встроенный SQLite (modernc.org/sqlite, по
// умолчанию) и PostgreSQL (pgx). Запросы пишутся с плейсхолдерами "?" и
// переписываются под диалект драйвера. Каждый метод выполняется в режиме
// автокоммита, кроме вызовов внутри WithinTx.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	// DriverSQLite — локальная база в файле.
	DriverSQLite = "sqlite"
	// DriverPostgres — PostgreSQL через pgx.
	DriverPostgres = "postgres"
)

var (
	// ErrNotFound возвращается, если подписки с указанным ID нет.
	ErrNotFound = errors.New("subscription not found")
	// ErrSubscriptionMissing возвращается, если платёж ссылается на
	// несуществующую подписку (нарушение внешнего ключа).
	ErrSubscriptionMissing = errors.New("payment references missing subscription")
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Storage инкапсулирует соединение с базой данных и реализует методы работы
// с подписками и платежами.
type Storage struct {
	DB     *sql.DB
	q      querier
	driver string
}

// New открывает базу данных выбранного драйвера и проверяет соединение.
// Для SQLite включаются внешние ключи, WAL и ожидание блокировки; число
// соединений ограничено одним, так как SQLite не допускает нескольких писателей.
func New(ctx context.Context, driver, dsn string) (*Storage, error) {
	const op = "storage.New"

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		if err = ensureDir(dsn); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", op, driver)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithDB(db, driver), nil
}

// NewWithDB оборачивает уже открытое соединение.
func NewWithDB(db *sql.DB, driver string) *Storage {
	return &Storage{
		DB:     db,
		q:      db,
		driver: driver,
	}
}

// Driver возвращает имя драйвера ("sqlite" или "postgres").
func (s *Storage) Driver() string {
	return s.driver
}

// Close закрывает соединение с базой.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// WithinTx выполняет fn в одной транзакции: все записи fn либо фиксируются
// вместе, либо откатываются. Внутри fn нужно использовать только переданный
// tx. Вложенный вызов переиспользует внешнюю транзакцию.
func (s *Storage) WithinTx(ctx context.Context, fn func(tx *Storage) error) error {
	const op = "storage.WithinTx"

	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}

	sqlTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txStorage := &Storage{DB: s.DB, q: sqlTx, driver: s.driver}
	if err = fn(txStorage); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%s: %w (rollback: %v)", op, err, rbErr)
		}
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// rebind переписывает плейсхолдеры "?" в "$1, $2, ..." для PostgreSQL.
func (s *Storage) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sqliteDSN(path string) string {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	return dsn + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "FOREIGN KEY")
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgerrcode.ForeignKeyViolation
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
