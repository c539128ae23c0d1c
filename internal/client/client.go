package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/gotify-push/internal/apperrors"
)

const messagePath = "/message"

// Message is the JSON body of a notification.
type Message struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds the whole request. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransport replaces the HTTP transport, primarily for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.SetTransport(rt)
	}
}

// Client sends notifications to one server.
type Client struct {
	baseURL string
	http    *resty.Client
	logger  *zap.Logger
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL: baseURL,
		http: resty.New().
			SetBaseURL(baseURL).
			SetRetryCount(0),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetLogger(c.logger.Sugar())
	return c
}

// Send posts msg authorized by token. Transport failures are returned as
// NetworkError, non-2xx responses as ServerError.
func (c *Client) Send(ctx context.Context, token string, msg Message) error {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", requestID).
		SetQueryParam("token", token).
		SetBody(msg).
		Post(messagePath)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactToken(urlErr.URL)
		}
		c.logger.Debug("notification request failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &apperrors.NetworkError{URL: c.baseURL + messagePath, Err: err}
	}

	c.logger.Debug("notification request completed",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	return mapHTTPError(resp)
}

// redactToken masks the token query parameter so the application token never
// reaches logs or error output.
func redactToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := u.Query()
	if !query.Has("token") {
		return rawURL
	}
	query.Set("token", "REDACTED")
	u.RawQuery = query.Encode()
	return u.String()
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &apperrors.ServerError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
