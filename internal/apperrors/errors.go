package apperrors

import (
	"errors"
	"fmt"
)

// ErrBucketNotFound indicates the configured storage bucket does not exist.
// It is a deployment problem, not a transient fault, and is surfaced to
// users with the bucket name so operators can fix the configuration.
var ErrBucketNotFound = errors.New("storage bucket not found")

// ErrAttachmentNotFound is returned when an attachment id does not resolve
// to a row.
var ErrAttachmentNotFound = errors.New("attachment not found")

// ErrFolderNotFound is returned when a document folder id does not resolve
// to a row.
var ErrFolderNotFound = errors.New("folder not found")

// StoreError wraps a blob-store failure (network, permission, missing
// object). Retried only by an explicit user resubmission.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("blob store: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("blob store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// RepositoryError wraps a relational-store failure on insert/update/delete.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// ValidationError reports a failed local precondition. It is raised before
// any network call, so no state has been mutated when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
