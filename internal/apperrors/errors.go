package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Exit codes returned by the command for each error kind.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitConfig  = 3
	ExitNetwork = 4
	ExitServer  = 5
)

// UsageError reports conflicting or missing command-line arguments.
type UsageError struct {
	Msg string
	Err error
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError reports a missing or unparsable configuration file, or a value
// the configuration was expected to provide but does not.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

// Configf builds a ConfigError that is not tied to a specific file.
func Configf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NetworkError reports that the notification server could not be reached.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("send notification to %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a non-success HTTP status from the notification server.
// Body holds the response body text.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("server responded with %d: %s", e.StatusCode, body)
}

// ExitCode maps an error returned by the application to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		usageErr   *UsageError
		configErr  *ConfigError
		networkErr *NetworkError
		serverErr  *ServerError
	)
	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &configErr):
		return ExitConfig
	case errors.As(err, &networkErr):
		return ExitNetwork
	case errors.As(err, &serverErr):
		return ExitServer
	default:
		return ExitFailure
	}
}
