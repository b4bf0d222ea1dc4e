package repository

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

const mysqlErrDuplicateEntry = 1062

// translateUniqueViolation maps a MySQL duplicate-entry error on the users
// table to the matching sentinel. Other errors are returned unchanged.
func translateUniqueViolation(err error) error {
	var mysqlErr *mysqldriver.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlErrDuplicateEntry {
		return err
	}
	switch {
	case strings.Contains(mysqlErr.Message, "uk_users_email"):
		return ErrDuplicateEmail
	case strings.Contains(mysqlErr.Message, "uk_users_username"):
		return ErrDuplicateUsername
	}
	return err
}
