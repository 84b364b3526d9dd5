package events

// User lifecycle kinds.
const (
	// UserCreated is dispatched when a user account is created.
	UserCreated Kind = "user:created"

	// UserUpdated is dispatched when a user account is modified.
	UserUpdated Kind = "user:updated"

	// UserDeleted is dispatched when a user account is removed.
	UserDeleted Kind = "user:deleted"

	// UserLoggedIn is dispatched when a user session begins.
	UserLoggedIn Kind = "user:loggedin"

	// UserLoggedOut is dispatched when a user session ends.
	UserLoggedOut Kind = "user:loggedout"
)
