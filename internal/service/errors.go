package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/trellis/internal/domain"
	"github.com/alexanderramin/trellis/internal/repository"
)

// StorageError marks a failure in the persistence backend rather than in the
// request itself. Callers may retry these; every other error category is
// deterministic and retrying will not help.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a backend failure.
func IsRetryable(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

var domainSentinels = []error{
	domain.ErrValidation,
	domain.ErrUnknownStatus,
	domain.ErrSelfDependency,
	domain.ErrDuplicateDependency,
	domain.ErrCyclicDependency,
	domain.ErrCrossProjectDependency,
	domain.ErrPartialTaskSet,
	repository.ErrNotFound,
}

// classify wraps backend failures in StorageError while letting rule
// violations and missing-row errors pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range domainSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return &StorageError{Op: op, Err: err}
}
