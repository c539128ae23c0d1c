package resolver

import "github.com/eugenenazirov/gotify-push/internal/config"

//go:generate mockgen -destination=mock/loader_mock.go -package=mock github.com/eugenenazirov/gotify-push/internal/resolver Loader

// Loader loads the configuration file. An empty path means the default
// search locations.
type Loader interface {
	Load(path string) (*config.File, error)
}

// Arguments are the parsed command-line values. Empty strings and a nil
// Priority mean the argument was not given.
type Arguments struct {
	URL        string
	ConfigPath string
	AppToken   string
	Key        string
	Title      string
	Message    string
	Priority   *int
}

// Request holds everything needed to send one notification.
type Request struct {
	URL      string `validate:"required,url"`
	Token    string `validate:"required"`
	Title    string `validate:"required"`
	Message  string `validate:"required"`
	Priority int
}

// messageFields are the parameters that fall back to the file defaults.
type messageFields struct {
	Title    string
	Message  string
	Priority *int
}
