// Package apperrors defines the error kinds a gotify-push invocation can end
// with and maps each kind to a process exit code. Errors are returned up the
// call chain and only the command entry point turns them into an exit status.
package apperrors
