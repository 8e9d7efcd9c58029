package main

import "errors"

// Sentinel errors for command operations
var (
	ErrIgnoredTokens   = errors.New("command line has ignored tokens")
	ErrRuleFailed      = errors.New("rule check failed")
	ErrNoRules         = errors.New("no rules to check: add rules to the config file or pass --expr")
	ErrInvalidLogLevel = errors.New("invalid log level")
)
