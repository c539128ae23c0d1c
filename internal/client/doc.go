// Package client delivers a single notification to a Gotify-compatible
// server with POST /message?token=<token>. It makes exactly one attempt.
package client
