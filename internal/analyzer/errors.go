package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the current quote for the resolved ticker could not be
	// obtained. It is the only failure that fails a whole analysis.
	ErrNotFound = errors.New("ticker not found or data unavailable")
	// ErrInvalidHorizon is returned for forecast horizons outside [MinHorizon, MaxHorizon].
	ErrInvalidHorizon = errors.New("invalid forecast horizon")
)

// LookupError carries the raw input and the ticker it resolved to.
type LookupError struct {
	SearchedFor string
	ResolvedTo  string
	Err         error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q (resolved to %s): %v", e.SearchedFor, e.ResolvedTo, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// HorizonError describes which bound a requested horizon violated.
type HorizonError struct {
	Days int
}

func (e *HorizonError) Error() string {
	if e.Days > MaxHorizon {
		return fmt.Sprintf("Maximum prediction period is %d days", MaxHorizon)
	}
	return fmt.Sprintf("Minimum prediction period is %d day", MinHorizon)
}

func (e *HorizonError) Unwrap() error { return ErrInvalidHorizon }
