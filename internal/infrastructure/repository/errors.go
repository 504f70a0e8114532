package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

const uniqueViolation = "23505"

// translate maps driver errors onto the batch store contract: unique key
// violations become batch.ErrDuplicateKey and lost connections become
// batch.ErrStoreUnavailable. The original error stays in the chain.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == uniqueViolation) {
		return fmt.Errorf("%s: %w: %w", op, batch.ErrDuplicateKey, err)
	}

	var connectErr *pgconn.ConnectError
	var netErr *net.OpError
	if errors.As(err, &connectErr) || errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %w", op, batch.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
