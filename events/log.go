package events

// Log severity kinds.
const (
	// LogDebug is dispatched for debug-level log records.
	LogDebug Kind = "log:debug"

	// LogInfo is dispatched for informational log records.
	LogInfo Kind = "log:info"

	// LogWarn is dispatched for warning log records.
	LogWarn Kind = "log:warn"

	// LogError is dispatched for error log records.
	LogError Kind = "log:error"

	// LogFatal is dispatched for fatal log records.
	LogFatal Kind = "log:fatal"
)
