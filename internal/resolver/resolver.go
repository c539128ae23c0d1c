package resolver

import (
	"fmt"
	"io"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"

	"github.com/eugenenazirov/gotify-push/internal/apperrors"
	"github.com/eugenenazirov/gotify-push/internal/config"
)

// StdinMarker is the message value that means "read the message from stdin".
const StdinMarker = "-"

// Resolver resolves Arguments into a Request.
type Resolver struct {
	loader   Loader
	stdin    io.Reader
	validate *validator.Validate
}

// New creates a Resolver reading configuration through loader and piped
// messages from stdin.
func New(loader Loader, stdin io.Reader) *Resolver {
	return &Resolver{
		loader:   loader,
		stdin:    stdin,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Resolve produces a fully populated Request or a UsageError / ConfigError.
func (r *Resolver) Resolve(args Arguments) (Request, error) {
	if err := checkConflicts(args); err != nil {
		return Request{}, err
	}

	if args.URL != "" {
		return r.resolveDirect(args)
	}
	return r.resolveFromConfig(args)
}

func checkConflicts(args Arguments) error {
	if args.URL != "" && args.ConfigPath != "" {
		return apperrors.Usagef("--url and --config are mutually exclusive")
	}
	if args.AppToken != "" && args.Key != "" {
		return apperrors.Usagef("--app-token and --key are mutually exclusive")
	}
	return nil
}

// resolveDirect handles --url: every parameter comes from the arguments and
// the configuration file is never loaded.
func (r *Resolver) resolveDirect(args Arguments) (Request, error) {
	if args.Key != "" {
		return Request{}, apperrors.Usagef("--key cannot be used with --url, pass --app-token instead")
	}

	var missing []string
	if args.AppToken == "" {
		missing = append(missing, "--app-token")
	}
	if args.Title == "" {
		missing = append(missing, "--title")
	}
	if args.Message == "" {
		missing = append(missing, "--message")
	}
	if args.Priority == nil {
		missing = append(missing, "--priority")
	}
	if len(missing) > 0 {
		return Request{}, apperrors.Usagef("--url requires %s", strings.Join(missing, ", "))
	}

	message, err := r.readMessage(args.Message)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		URL:      args.URL,
		Token:    args.AppToken,
		Title:    args.Title,
		Message:  message,
		Priority: *args.Priority,
	}
	if err := r.validate.Struct(req); err != nil {
		return Request{}, &apperrors.UsageError{Msg: "invalid arguments", Err: err}
	}
	return req, nil
}

func (r *Resolver) resolveFromConfig(args Arguments) (Request, error) {
	cfg, err := r.loader.Load(args.ConfigPath)
	if err != nil {
		return Request{}, fmt.Errorf("load config: %w", err)
	}

	if cfg.URL == "" {
		return Request{}, apperrors.Configf("url is not set in config")
	}

	token, err := resolveToken(args, cfg)
	if err != nil {
		return Request{}, err
	}

	fields, err := resolveMessageFields(args, cfg.Default)
	if err != nil {
		return Request{}, err
	}

	message := fields.Message
	if args.Message != "" {
		if message, err = r.readMessage(args.Message); err != nil {
			return Request{}, err
		}
	}

	req := Request{
		URL:      cfg.URL,
		Token:    token,
		Title:    fields.Title,
		Message:  message,
		Priority: *fields.Priority,
	}
	if err := r.validate.Struct(req); err != nil {
		return Request{}, &apperrors.ConfigError{Msg: "invalid notification parameters", Err: err}
	}
	return req, nil
}

// resolveToken picks the token: tokenMap[key], then --app-token, then
// default.token.
func resolveToken(args Arguments, cfg *config.File) (string, error) {
	switch {
	case args.Key != "":
		return cfg.Token(args.Key)
	case args.AppToken != "":
		return args.AppToken, nil
	case cfg.Default.Token != "":
		return cfg.Default.Token, nil
	default:
		return "", apperrors.Configf("default.token is not set in config and no --app-token or --key given")
	}
}

// resolveMessageFields fills every field not given as an argument from the
// file defaults. Pointers are not dereferenced so an explicit --priority 0
// is kept.
func resolveMessageFields(args Arguments, defaults config.Defaults) (messageFields, error) {
	fields := messageFields{
		Title:    args.Title,
		Message:  args.Message,
		Priority: args.Priority,
	}
	fallback := messageFields{
		Title:    defaults.Title,
		Message:  defaults.Message,
		Priority: defaults.Priority,
	}
	if err := mergo.Merge(&fields, fallback, mergo.WithoutDereference); err != nil {
		return messageFields{}, fmt.Errorf("merge defaults: %w", err)
	}

	switch {
	case fields.Title == "":
		return messageFields{}, apperrors.Configf("default.title is not set in config and no --title given")
	case fields.Message == "":
		return messageFields{}, apperrors.Configf("default.message is not set in config and no --message given")
	case fields.Priority == nil:
		return messageFields{}, apperrors.Configf("default.priority is not set in config and no --priority given")
	}
	return fields, nil
}

// readMessage returns value, or the whole of stdin when value is "-".
func (r *Resolver) readMessage(value string) (string, error) {
	if value != StdinMarker {
		return value, nil
	}
	if r.stdin == nil {
		return "", apperrors.Usagef("--message - given but stdin is not available")
	}

	data, err := io.ReadAll(r.stdin)
	if err != nil {
		return "", &apperrors.UsageError{Msg: "read message from stdin", Err: err}
	}

	message := string(data)
	if trimmed, ok := strings.CutSuffix(message, "\r\n"); ok {
		message = trimmed
	} else {
		message = strings.TrimSuffix(message, "\n")
	}
	if message == "" {
		return "", apperrors.Usagef("message read from stdin is empty")
	}
	return message, nil
}
