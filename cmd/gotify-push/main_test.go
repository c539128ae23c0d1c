package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/gotify-push/internal/apperrors"
	"github.com/eugenenazirov/gotify-push/internal/fakeserver"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOTIFY_PUSH_LOG_LEVEL", "error")
	t.Setenv("GOTIFY_PUSH_LOG_FORMAT", "console")
	t.Setenv("GOTIFY_PUSH_TIMEOUT", "5s")
	t.Setenv("GOTIFY_PUSH_CONFIG", "")
}

func TestRunSendsWithExplicitURL(t *testing.T) {
	isolateEnv(t)
	srv := fakeserver.Start(zaptest.NewLogger(t), []string{"app-token"})
	defer srv.Close()

	var stderr bytes.Buffer
	code := run([]string{"-u", srv.URL, "-a", "app-token", "-t", "Deploy", "-m", "-", "-p", "0"}, strings.NewReader("Hello World"), &stderr)

	if code != apperrors.ExitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	messages := srv.Messages()
	if len(messages) != 1 || messages[0].Message != "Hello World" || messages[0].Priority != 0 {
		t.Fatalf("unexpected messages %+v", messages)
	}
}

func TestRunSendsNegativePriority(t *testing.T) {
	isolateEnv(t)
	srv := fakeserver.Start(zaptest.NewLogger(t), []string{"app-token"})
	defer srv.Close()

	var stderr bytes.Buffer
	code := run([]string{"-u", srv.URL, "-a", "app-token", "-t", "a", "-m", "b", "-p", "-1"}, nil, &stderr)

	if code != apperrors.ExitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	messages := srv.Messages()
	if len(messages) != 1 || messages[0].Priority != -1 {
		t.Fatalf("unexpected messages %+v", messages)
	}
}

func TestRunSendsWithConfigFile(t *testing.T) {
	isolateEnv(t)
	srv := fakeserver.Start(zaptest.NewLogger(t), []string{"backup-token"})
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "push.yml")
	content := "url: " + srv.URL + "\ndefault:\n  token: default-token\n  title: Backup\n  message: ok\n  priority: 2\ntokenMap:\n  backup: backup-token\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stderr bytes.Buffer
	code := run([]string{"--config", path, "--key", "backup", "--priority", "9"}, nil, &stderr)

	if code != apperrors.ExitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	messages := srv.Messages()
	if len(messages) != 1 || messages[0].Title != "Backup" || messages[0].Priority != 9 {
		t.Fatalf("unexpected messages %+v", messages)
	}
}

func TestRunSurfacesServerErrorBody(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "bad token")
	}))
	defer srv.Close()

	var stderr bytes.Buffer
	code := run([]string{"-u", srv.URL, "-a", "x", "-t", "a", "-m", "b", "-p", "1"}, nil, &stderr)

	if code == apperrors.ExitOK {
		t.Fatalf("expected non-zero exit code")
	}
	if code != apperrors.ExitServer {
		t.Fatalf("expected server exit code %d, got %d", apperrors.ExitServer, code)
	}
	if !strings.Contains(stderr.String(), "bad token") {
		t.Fatalf("expected stderr to contain response body, got %q", stderr.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name string
		argv []string
	}{
		{name: "URLWithoutPriority", argv: []string{"-u", "http://localhost", "-a", "x", "-t", "a", "-m", "b"}},
		{name: "URLWithKey", argv: []string{"-u", "http://localhost", "-k", "ssh", "-t", "a", "-m", "b", "-p", "1"}},
		{name: "URLAndConfig", argv: []string{"-u", "http://localhost", "-c", "/tmp/x.yml"}},
		{name: "AppTokenAndKey", argv: []string{"-a", "x", "-k", "ssh"}},
		{name: "NonIntegerPriority", argv: []string{"-p", "high"}},
		{name: "UnknownFlag", argv: []string{"--bogus"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(tc.argv, nil, &stderr)

			if code != apperrors.ExitUsage {
				t.Fatalf("expected usage exit code %d, got %d: %s", apperrors.ExitUsage, code, stderr.String())
			}
			if !strings.Contains(stderr.String(), "gotify-push: error:") {
				t.Fatalf("expected error message on stderr, got %q", stderr.String())
			}
		})
	}
}

func TestRunConfigErrorWhenNothingFound(t *testing.T) {
	isolateEnv(t)

	var stderr bytes.Buffer
	code := run([]string{"-c", filepath.Join(t.TempDir(), "missing.yml")}, nil, &stderr)

	if code != apperrors.ExitConfig {
		t.Fatalf("expected config exit code %d, got %d: %s", apperrors.ExitConfig, code, stderr.String())
	}
}

func TestRunNetworkError(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var stderr bytes.Buffer
	code := run([]string{"-u", url, "-a", "s3cret-token", "-t", "a", "-m", "b", "-p", "1"}, nil, &stderr)

	if code != apperrors.ExitNetwork {
		t.Fatalf("expected network exit code %d, got %d: %s", apperrors.ExitNetwork, code, stderr.String())
	}
	if strings.Contains(stderr.String(), "s3cret-token") {
		t.Fatalf("expected token to be hidden from stderr, got %q", stderr.String())
	}
}

func TestRunRejectsInvalidSettings(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GOTIFY_PUSH_LOG_FORMAT", "xml")

	var stderr bytes.Buffer
	code := run([]string{"-u", "http://localhost"}, nil, &stderr)

	if code != apperrors.ExitConfig {
		t.Fatalf("expected config exit code %d, got %d", apperrors.ExitConfig, code)
	}
}

func TestJoinStdinMarker(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{in: []string{"-m", "-"}, want: []string{"--message=-"}},
		{in: []string{"-t", "x", "--message", "-", "-p", "1"}, want: []string{"-t", "x", "--message=-", "-p", "1"}},
		{in: []string{"-m", "text"}, want: []string{"-m", "text"}},
		{in: []string{"-m"}, want: []string{"-m"}},
		{in: []string{"--", "-m", "-"}, want: []string{"--", "-m", "-"}},
		{in: []string{"-p", "-1"}, want: []string{"--priority=-1"}},
		{in: []string{"-t", "x", "--priority", "-5", "-m", "b"}, want: []string{"-t", "x", "--priority=-5", "-m", "b"}},
		{in: []string{"-p", "-m", "b"}, want: []string{"-p", "-m", "b"}},
		{in: []string{"-p", "3"}, want: []string{"-p", "3"}},
	}

	for _, tc := range tests {
		got := joinStdinMarker(tc.in)
		if strings.Join(got, " ") != strings.Join(tc.want, " ") {
			t.Fatalf("joinStdinMarker(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
