package kcmdline

import "errors"

// Common errors used throughout the kcmdline packages
var (
	// ErrProfileNotFound is returned when a named profile is not configured.
	ErrProfileNotFound = errors.New("profile not found")

	// Source errors
	ErrNoCmdline         = errors.New("no command line found")
	ErrUnsupportedSource = errors.New("unsupported source")

	// Rule errors
	ErrNotBoolean     = errors.New("rule expression must evaluate to bool")
	ErrRuleCompile    = errors.New("failed to compile rule")
	ErrRuleEvaluation = errors.New("failed to evaluate rule")

	// ErrUnknownFormat is returned for an output format outside the supported set.
	ErrUnknownFormat = errors.New("unknown output format")
)
