package server

// Server is the lifecycle of the mock API listener.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then shuts down
	// gracefully and returns.
	RunServer()

	// Shutdown stops accepting connections and waits for in-flight
	// requests.
	Shutdown()
}
