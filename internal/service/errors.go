// Package service implements the community rules on top of the
// repository interfaces. Every operation returns either a kinded *Error
// from the taxonomy below or an unclassified error (a store failure the
// HTTP layer reports as 500); no raw driver error crosses this boundary
// with a kind attached.
package service

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func notFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func forbidden(msg string) error  { return &Error{Kind: KindForbidden, Message: msg} }

// KindOf extracts the taxonomy kind, KindUnknown for anything else.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
