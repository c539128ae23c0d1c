// Package resolver turns command-line arguments and, when needed, the loaded
// configuration file into the complete set of notification parameters.
//
// Precedence per parameter: explicit argument, then the configuration file.
// The token may additionally be selected by key through the file's tokenMap.
// When a server URL is passed on the command line the configuration file is
// not consulted at all, so every other parameter must be given as well.
package resolver
