package provider

import (
	"errors"
	"fmt"
)

// Error classes returned by the provider. Use errors.Is to branch on them.
var (
	// ErrUnknownAddress means the address matched no route
	ErrUnknownAddress = errors.New("unknown address")

	// ErrInvalidRoute means the operation is not allowed on the resolved route class
	ErrInvalidRoute = errors.New("invalid route")

	// ErrStoreFailure means the table store rejected the operation
	ErrStoreFailure = errors.New("store failure")

	// ErrUnknownOperation means a batch entry carried an unsupported kind
	ErrUnknownOperation = errors.New("unknown operation")
)

// AddressError carries the offending address for routing failures.
// Err is ErrUnknownAddress or ErrInvalidRoute.
type AddressError struct {
	Address string
	Reason  string
	Err     error
}

func (e *AddressError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v, %s: %s", e.Err, e.Reason, e.Address)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Address)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

func unknownAddress(address string) error {
	return &AddressError{Address: address, Err: ErrUnknownAddress}
}

func invalidRoute(address, reason string) error {
	return &AddressError{Address: address, Reason: reason, Err: ErrInvalidRoute}
}

// StoreError wraps an error returned by the table store.
// It matches ErrStoreFailure and unwraps to the store's own error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrStoreFailure, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func storeFailure(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// BatchError identifies the sub-operation that aborted a batch
type BatchError struct {
	Index int
	Kind  OperationKind
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch operation %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
