package carddb

import (
	"errors"
	"fmt"
)

// FailureKind classifies every failure the card database layer can
// produce. NotFound, Ambiguous and SourceUnavailable are recoverable per
// card; IntegrityViolation and SchemaMismatch abort the whole run
// because data consistency can no longer be guaranteed.
type FailureKind string

const (
	NotFound           FailureKind = "NOT_FOUND"
	Ambiguous          FailureKind = "AMBIGUOUS"
	SourceUnavailable  FailureKind = "SOURCE_UNAVAILABLE"
	IntegrityViolation FailureKind = "INTEGRITY_VIOLATION"
	SchemaMismatch     FailureKind = "SCHEMA_MISMATCH"
)

// Error is the structured failure type of the resolution layer.
type Error struct {
	Kind FailureKind
	Msg  string

	// Candidates carries the matching printings of an Ambiguous failure
	// for caller-side disambiguation. Nil for every other kind.
	Candidates []PrintingRecord

	// Err is the wrapped cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two *Error values by kind, so sentinel
// comparisons like errors.Is(err, &Error{Kind: NotFound}) work without
// comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NotFoundError reports a name with zero matches both locally and at the
// external source.
func NotFoundError(name string) error {
	return &Error{
		Kind: NotFound,
		Msg:  fmt.Sprintf("no printing found for card %q", name),
	}
}

// AmbiguousError reports that multiple printings match after all hints
// were applied. The resolver never guesses among them.
func AmbiguousError(name string, candidates []PrintingRecord) error {
	return &Error{
		Kind: Ambiguous,
		Msg: fmt.Sprintf("%d printings match card %q",
			len(candidates), name),
		Candidates: candidates,
	}
}

// SourceUnavailableError reports a failed remote fetch: network error,
// timeout, rate limiting or a malformed response.
func SourceUnavailableError(msg string, cause error) error {
	return &Error{
		Kind: SourceUnavailable,
		Msg:  msg,
		Err:  cause,
	}
}

// IntegrityError reports a write that would violate a uniqueness,
// foreign-key or format invariant. It is fatal to that single write and
// to the surrounding run.
func IntegrityError(msg string, cause error) error {
	return &Error{
		Kind: IntegrityViolation,
		Msg:  msg,
		Err:  cause,
	}
}

// SchemaMismatchError reports a persisted schema version this build
// cannot operate against.
func SchemaMismatchError(have, want int, cause error) error {
	var msg string
	switch {
	case have > want:
		msg = fmt.Sprintf(
			"database schema version %d is newer than supported version %d; "+
				"downgrades are not supported", have, want)
	default:
		msg = fmt.Sprintf(
			"database schema version %d is behind expected version %d; "+
				"run the migration path first", have, want)
	}
	return &Error{
		Kind: SchemaMismatch,
		Msg:  msg,
		Err:  cause,
	}
}

// KindOf extracts the FailureKind of err. The bool result is false when
// err does not carry a carddb classification.
func KindOf(err error) (FailureKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsRecoverable reports whether err is a per-card failure the
// surrounding conversion may skip past, as opposed to one that aborts
// the run.
func IsRecoverable(err error) bool {
	switch kind, ok := KindOf(err); {
	case !ok:
		return false
	case kind == NotFound, kind == Ambiguous, kind == SourceUnavailable:
		return true
	}
	return false
}

// CandidatesOf returns the candidate list of an Ambiguous failure, nil
// otherwise.
func CandidatesOf(err error) []PrintingRecord {
	var e *Error
	if errors.As(err, &e) && e.Kind == Ambiguous {
		return e.Candidates
	}
	return nil
}
