package dispatch

import (
	"fmt"
	"strings"
)

// NoApplicableError reports a call whose arguments satisfy no candidate.
type NoApplicableError struct {
	Routine  string
	ArgTypes []string
}

func (e *NoApplicableError) Error() string {
	return fmt.Sprintf("no applicable candidate for %s(%s)", e.Routine, strings.Join(e.ArgTypes, ", "))
}

// AmbiguousDispatchError reports two or more candidates tying on the full
// narrowness ordering for one call. Never resolved by arbitrary order.
type AmbiguousDispatchError struct {
	Routine    string
	ArgTypes   []string
	Signatures []string
}

func (e *AmbiguousDispatchError) Error() string {
	return fmt.Sprintf("ambiguous dispatch for %s(%s): candidates %s tie on narrowness",
		e.Routine, strings.Join(e.ArgTypes, ", "), strings.Join(e.Signatures, " and "))
}

// RedispatchExhaustedError reports a delegation past the end of the sorted
// candidate order.
type RedispatchExhaustedError struct {
	Routine string
}

func (e *RedispatchExhaustedError) Error() string {
	return fmt.Sprintf("re-dispatch exhausted: no further candidate for %s", e.Routine)
}
