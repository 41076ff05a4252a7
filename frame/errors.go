package frame

import "errors"

var (
	// ErrEmptyIndex indicates an Index with zero timestamps where at least one is required.
	ErrEmptyIndex = errors.New("frame: index must contain at least one timestamp")

	// ErrLengthMismatch indicates values whose length differs from the owning index.
	ErrLengthMismatch = errors.New("frame: values length does not match index length")

	// ErrDuplicateColumn indicates an attempt to add a column name that already exists.
	ErrDuplicateColumn = errors.New("frame: duplicate column name")

	// ErrUnknownColumn indicates a reference to a column the frame does not hold.
	ErrUnknownColumn = errors.New("frame: unknown column")

	// ErrIndexNotCovered indicates a requested timestamp set outside the frame's index.
	ErrIndexNotCovered = errors.New("frame: index does not cover requested timestamps")
)
