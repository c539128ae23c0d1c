package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/gotify-push/internal/application"
	"github.com/eugenenazirov/gotify-push/internal/apperrors"
	"github.com/eugenenazirov/gotify-push/internal/config"
	"github.com/eugenenazirov/gotify-push/internal/logging"
	"github.com/eugenenazirov/gotify-push/internal/resolver"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stderr))
}

// run parses argv, sends one notification and returns the process exit code.
// Every error ends up here and is printed once to stderr.
func run(argv []string, stdin io.Reader, stderr io.Writer) int {
	kingpinApp := kingpin.New("gotify-push", "Send a push notification to a Gotify server")
	kingpinApp.Version(version)
	kingpinApp.ErrorWriter(stderr)
	kingpinApp.UsageWriter(stderr)

	url := kingpinApp.Flag("url", "Server URL; requires --app-token, --title, --message and --priority").Short('u').String()
	configPath := kingpinApp.Flag("config", "Path to YAML configuration file").Short('c').String()
	appToken := kingpinApp.Flag("app-token", "Application token").Short('a').String()
	key := kingpinApp.Flag("key", "Key of the token in the config tokenMap").Short('k').String()
	title := kingpinApp.Flag("title", "Notification title").Short('t').String()
	message := kingpinApp.Flag("message", "Notification message, - reads it from stdin").Short('m').String()
	var prioritySet bool
	priority := kingpinApp.Flag("priority", "Notification priority").Short('p').IsSetByUser(&prioritySet).Int()
	verbose := kingpinApp.Flag("verbose", "Enable debug logging").Short('v').Bool()

	if _, err := kingpinApp.Parse(joinStdinMarker(argv)); err != nil {
		kingpinApp.Errorf("%s, try --help", err)
		return apperrors.ExitUsage
	}

	settings, err := config.LoadSettings()
	if err != nil {
		kingpinApp.Errorf("%s", err)
		return apperrors.ExitCode(err)
	}
	if *verbose {
		settings.LogLevel = "debug"
	}

	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		kingpinApp.Errorf("failed to initialize logger: %s", err)
		return apperrors.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Debug("settings loaded", zap.String("settings", settings.Describe()))

	args := resolver.Arguments{
		URL:        *url,
		ConfigPath: *configPath,
		AppToken:   *appToken,
		Key:        *key,
		Title:      *title,
		Message:    *message,
	}
	if prioritySet {
		args.Priority = priority
	}

	app := application.New(settings, logger)
	if err := app.Run(context.Background(), args, stdin); err != nil {
		kingpinApp.Errorf("%s", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}

// joinStdinMarker rewrites "-m -" to "--message=-" and "-p -1" to
// "--priority=-1" so kingpin takes the dash-led value as the flag value
// instead of a flag token.
func joinStdinMarker(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			return append(out, argv[i:]...)
		}
		if (arg == "-m" || arg == "--message") && i+1 < len(argv) && argv[i+1] == resolver.StdinMarker {
			out = append(out, "--message="+resolver.StdinMarker)
			i++
			continue
		}
		if (arg == "-p" || arg == "--priority") && i+1 < len(argv) && isNegativeInt(argv[i+1]) {
			out = append(out, "--priority="+argv[i+1])
			i++
			continue
		}
		out = append(out, arg)
	}
	return out
}

func isNegativeInt(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
