package services

import (
	"errors"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
