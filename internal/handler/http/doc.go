// Package http implements the REST transport of the history server.
//
// It exposes route wiring, request handlers, and middleware. Request
// tracing, access logging, bearer-token authentication, and key-hash checks
// are handled in this package before requests are delegated to the service
// layer. The server stores encrypted history blobs and never sees plaintext.
package http
