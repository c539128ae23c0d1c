// Package fakeserver runs an in-process notification server that speaks the
// subset of the Gotify API gotify-push uses. Tests start it with Start and
// inspect the messages it accepted.
package fakeserver
