package events

// Server lifecycle kinds.
const (
	// ServerStarting is dispatched before the server begins accepting work.
	ServerStarting Kind = "server:starting"

	// ServerStarted is dispatched once the server is accepting work.
	ServerStarted Kind = "server:started"

	// ServerStopping is dispatched when shutdown begins.
	ServerStopping Kind = "server:stopping"

	// ServerStopped is dispatched after shutdown completes.
	ServerStopped Kind = "server:stopped"

	// ServerError is dispatched when the server encounters a fault.
	ServerError Kind = "server:error"
)
