package blockmodel

import "github.com/pkg/errors"

// Reason is the machine-readable discriminant every block-validation error
// carries alongside its human-readable message.
type Reason string

const (
	ReasonDataLengthTooShort        Reason = "DataLengthTooShort"
	ReasonDataLengthExceedsCapacity Reason = "DataLengthExceedsCapacity"
	ReasonFutureCreationDate        Reason = "FutureCreationDate"
	ReasonBlockSizeMismatch         Reason = "BlockSizeMismatch"
	ReasonChecksumMismatch          Reason = "ChecksumMismatch"
	ReasonInvalidHeader             Reason = "InvalidHeader"
)

var (
	ErrDataLengthTooShort        = errors.New(string(ReasonDataLengthTooShort))
	ErrDataLengthExceedsCapacity = errors.New(string(ReasonDataLengthExceedsCapacity))
	ErrFutureCreationDate        = errors.New(string(ReasonFutureCreationDate))
	ErrBlockSizeMismatch         = errors.New(string(ReasonBlockSizeMismatch))
	ErrInvalidHeader             = errors.New(string(ReasonInvalidHeader))
)

// ChecksumMismatchError is ReasonChecksumMismatch with the two digests that
// disagreed attached, per the spec's user-visible error contract.
type ChecksumMismatchError struct {
	Expected ChecksumBuffer
	Computed ChecksumBuffer
}

func (e *ChecksumMismatchError) Error() string {
	return "blockmodel: " + string(ReasonChecksumMismatch) + ": expected " +
		e.Expected.String() + ", computed " + e.Computed.String()
}

// Reason implements the machine-readable discriminant contract.
func (e *ChecksumMismatchError) Reason() Reason { return ReasonChecksumMismatch }

// NewChecksumMismatch builds a ChecksumMismatchError for the given digests.
func NewChecksumMismatch(expected, computed ChecksumBuffer) error {
	return &ChecksumMismatchError{Expected: expected, Computed: computed}
}

// IsChecksumMismatch reports whether err is (or wraps) a ChecksumMismatchError
// and, if so, returns it.
func IsChecksumMismatch(err error) (*ChecksumMismatchError, bool) {
	var mismatch *ChecksumMismatchError
	if errors.As(err, &mismatch) {
		return mismatch, true
	}
	return nil, false
}
