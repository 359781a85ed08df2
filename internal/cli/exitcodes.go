package cli

import (
	"errors"

	"github.com/samvad-hq/samvad-fetcher/pkg/httpclient"
)

// Exit codes for the fetch CLI
const (
	// ExitSuccess indicates every request succeeded
	ExitSuccess = 0

	// ExitStatusError indicates a response with a non-2xx status
	ExitStatusError = 1

	// ExitUsageError indicates bad arguments, an invalid request definition, or a request
	// that could not be built
	ExitUsageError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error or timeout
	ExitNetworkError = 4
)

// ConfigError marks failures while loading configuration or wiring dependencies.
type ConfigError struct{ Err error }

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	var herr *httpclient.Error
	if errors.As(err, &herr) {
		switch herr.Kind {
		case httpclient.KindStatus:
			return ExitStatusError
		case httpclient.KindTransport:
			return ExitNetworkError
		default:
			return ExitUsageError
		}
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		return ExitUsageError
	}
	return ExitStatusError
}
