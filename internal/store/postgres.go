package store

import (
	"context"
	"database/sql"
	"encoding/json"
	goerrors "errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// PostgresStore persists snapshots in a single key-value table, keeping the
// same key layout as the other backends.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(cfg config.PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &PostgresStore{db: db, logger: logger}, nil
}

// RunMigrations applies the SQL migrations from the configured directory.
func (s *PostgresStore) RunMigrations(migrationsDir string) error {
	driver, err := migratepg.WithInstance(s.db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsDir),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !goerrors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO checkout_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *PostgresStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM checkout_kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) Save(ctx context.Context, snapshot *domain.OrderSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err := s.set(ctx, orderKey(snapshot.OrderID), raw); err != nil {
		return fmt.Errorf("save snapshot failed: %w", err)
	}
	if err := s.set(ctx, lastOrderKey, []byte(snapshot.OrderID)); err != nil {
		return fmt.Errorf("save last order id failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	raw, err := s.get(ctx, orderKey(orderID))
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}
	if err != nil {
		s.logger.Error("Postgres read failed, treating as not found",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}

	var snapshot domain.OrderSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		s.logger.Error("Corrupt order snapshot, treating as not found",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}
	return &snapshot, nil
}

func (s *PostgresStore) LoadLastOrderID(ctx context.Context) (string, error) {
	raw, err := s.get(ctx, lastOrderKey)
	if goerrors.Is(err, sql.ErrNoRows) {
		return "", &errors.ErrNotFound{Resource: "last order id"}
	}
	if err != nil {
		s.logger.Error("Postgres read of last order id failed", zap.Error(err))
		return "", &errors.ErrNotFound{Resource: "last order id"}
	}
	return string(raw), nil
}

func (s *PostgresStore) SetClearCartFlag(ctx context.Context, orderID string) error {
	if err := s.set(ctx, clearCartKey(orderID), []byte("1")); err != nil {
		return fmt.Errorf("set clear-cart flag failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) ConsumeClearCartFlag(ctx context.Context, orderID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM checkout_kv WHERE key = $1`, clearCartKey(orderID))
	if err != nil {
		return false, fmt.Errorf("consume clear-cart flag failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
