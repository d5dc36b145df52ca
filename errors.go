package vktor

import "errors"

// Sentinel errors, mirroring libvktor's vktor_errcode taxonomy. Use
// errors.Is to test for a specific one; wrapped errors always carry
// additional context via fmt.Errorf("%w: ...", ...).
var (
	ErrOutOfMemory     = errors.New("vktor: out of memory")
	ErrUnexpectedInput = errors.New("vktor: unexpected input")
	ErrIncompleteData  = errors.New("vktor: incomplete data")
	ErrNoValue         = errors.New("vktor: no value")
	ErrOutOfRange      = errors.New("vktor: value out of range")
	ErrMaxNest         = errors.New("vktor: maximum nesting depth reached")
	ErrInternal        = errors.New("vktor: internal parser error")
)
