// Package config loads settings for both binaries of the history sync
// system.
//
// Sources are merged with mergo in priority order: environment variables,
// command-line flags, the JSON file named by -c or CONFIG, then built-in
// defaults. A field keeps the value from the first source that sets it.
//
// [GetStructuredConfig] returns the full view used by the history server.
// [GetClientConfig] narrows it to what the client CLI needs and validates
// the project identity, local database path and remote address.
package config
