package services

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/charlesng35/favorites/pkg/validator"
)

var (
	// ErrFavoriteNotFound indicates the requested favorite does not exist.
	ErrFavoriteNotFound = errors.New("favorite service: favorite not found")
	// ErrInvalidID indicates an id that is not a well-formed positive integer.
	ErrInvalidID = errors.New("favorite service: invalid id")
)

// ValidationError aggregates every rejected field of a payload.
type ValidationError struct {
	Issues validator.Issues
}

func (e *ValidationError) Error() string {
	return "favorite service: validation failed: " + e.Issues.Error()
}

// isOutOfRangeError detects values the store cannot represent in the target
// column, such as an id beyond the key column's range.
func isOutOfRangeError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "22003" {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr != nil && (myErr.Number == 1264 || myErr.Number == 1690) {
		return true
	}

	return false
}
