package server

// Server runs the history HTTP API until a stop signal arrives.
type Server interface {
	// RunServer blocks until SIGINT, SIGTERM or SIGQUIT, then drains
	// in-flight requests.
	RunServer()

	// Shutdown stops accepting requests and waits for active ones.
	Shutdown()
}
