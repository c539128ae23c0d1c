// Package config loads the gotify-push configuration file and the process
// settings. The file supplies the server URL, per-application tokens and
// message defaults; command-line arguments take precedence over it. When no
// explicit path is given, a fixed list of well-known locations is searched and
// the first existing file wins.
package config
