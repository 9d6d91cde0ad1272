package services

import (
	"errors"

	"storefront/internal/apperr"
	"storefront/internal/repositories"
)

// notFound converts a repository miss into a NotFound error with msg and
// passes every other error through untouched.
func notFound(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &apperr.Error{Kind: apperr.KindNotFound, Message: msg, Err: err}
	}
	return err
}
