// Package server runs the history server's HTTP transport.
//
// It owns the listener lifecycle, including startup, signal handling, and
// graceful shutdown.
package server
