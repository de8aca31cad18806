package enrollment

import "errors"

var (
	ErrEnrollmentNotFound       = errors.New("enrollment not found")
	ErrEnrollmentNotPending     = errors.New("enrollment is not pending")
	ErrEnrollmentNotCancellable = errors.New("enrollment cannot be cancelled in its current status")
	ErrInvalidStatus            = errors.New("invalid enrollment status")
	ErrNurseryNotFound          = errors.New("nursery not found")
)
