// Package application wires settings, logging, configuration loading,
// parameter resolution and the notification client for one gotify-push
// invocation, keeping the main package focused on CLI parsing and the exit
// status.
package application
