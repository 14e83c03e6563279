package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
	"github.com/custodia-labs/expense-tracker/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ExpenseStore = (*Store)(nil)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

const (
	// busyTimeout is how long a statement waits for another writer's lock.
	busyTimeout = 5 * time.Second

	// dirtyRetryInterval paces retries while another initializer holds the
	// schema version mid-migration.
	dirtyRetryInterval = 50 * time.Millisecond
)

// initLocks serialises Initialize per database file within the process.
var initLocks sync.Map

func initLock(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	mu, _ := initLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Store is a SQLite-backed expense store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database file at dbPath, creating its directory if
// needed. The schema is not touched until Initialize is called.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open(driverName, dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Store{
		db:   db,
		path: dbPath,
	}, nil
}

// dsn waits up to busyTimeout for locks and enables WAL so readers never
// block the single writer.
func dsn(path string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, busyTimeout.Milliseconds())
}

// migrationDSN takes the write lock when a migration transaction begins, so
// two migrators never both hold a read snapshot they then try to upgrade.
func migrationDSN(path string) string {
	return dsn(path) + "&_txlock=immediate"
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize applies all pending migrations. Calling it again once the
// schema is current is a no-op. Concurrent callers on the same file wait
// for each other; a schema version left dirty by a migrator in another
// process is retried until busyTimeout elapses.
func (s *Store) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mu := initLock(s.path)
	mu.Lock()
	defer mu.Unlock()

	deadline := time.Now().Add(busyTimeout)
	for {
		err := s.migrate()

		var dirty migrate.ErrDirty
		if !errors.As(err, &dirty) || time.Now().After(deadline) {
			return err
		}
		logger.Debug("Schema version %d at %s is mid-migration, retrying", dirty.Version, s.path)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dirtyRetryInterval):
		}
	}
}

func (s *Store) migrate() error {
	// migrate.Close closes the database it was given, so it gets its own handle.
	migrateDB, err := sql.Open(driverName, migrationDSN(s.path))
	if err != nil {
		return storageError("opening migration database", err)
	}
	defer migrateDB.Close()

	driver, err := migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	if err != nil {
		return storageError("creating migration driver", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return storageError("creating migrator", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("Schema at %s is up to date", s.path)
			return nil
		}
		return storageError("running migrations", err)
	}

	version, _, err := m.Version()
	if err == nil {
		logger.Info("Migrated %s to schema version %d", s.path, version)
	}
	return nil
}

// Insert persists a new expense and returns its ID.
func (s *Store) Insert(ctx context.Context, expense domain.NewExpense) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (date, amount, category, subcategory, note)
		VALUES (?, ?, ?, ?, ?)
	`, expense.Date, expense.Amount, expense.Category, expense.Subcategory, expense.Note)
	if err != nil {
		return 0, storageError("inserting expense", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("reading expense id", err)
	}
	return id, nil
}

// QueryRange returns expenses with start <= date <= end, in ID order.
func (s *Store) QueryRange(ctx context.Context, r domain.DateRange) ([]domain.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, category, subcategory, note
		FROM expenses
		WHERE date BETWEEN ? AND ?
		ORDER BY id ASC
	`, r.Start, r.End)
	if err != nil {
		return nil, storageError("querying expenses", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		var subcategory, note sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &subcategory, &note); err != nil {
			return nil, storageError("scanning expense", err)
		}
		e.Subcategory = subcategory.String
		e.Note = note.String
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterating expenses", err)
	}

	return expenses, nil
}

// Summarize returns per-category totals for the range, ordered by category.
func (s *Store) Summarize(
	ctx context.Context,
	r domain.DateRange,
	filter domain.SummaryFilter,
) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount) AS total_amount
		FROM expenses
		WHERE date BETWEEN ? AND ?`
	args := []any{r.Start, r.End}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " GROUP BY category ORDER BY category ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("summarizing expenses", err)
	}
	defer rows.Close()

	totals := make([]domain.CategoryTotal, 0)
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Category, &t.TotalAmount); err != nil {
			return nil, storageError("scanning category total", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterating category totals", err)
	}

	return totals, nil
}

// storageError tags err as a domain.ErrStorage failure of op.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
