package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf("failed to parse database config: %w", err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf("failed to create connection pool: %w", err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf("failed to ping database: %w", err)
}
