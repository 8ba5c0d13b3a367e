package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for an empty or missing question.
	ErrInvalidInput = errors.New("invalid input")

	// ErrChapterNotFound is returned when an explicit chapter has no record.
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrStorageUnavailable wraps every failure of a catalog or store call.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageErr tags err as a storage failure while keeping it inspectable.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
