package events

// Role lifecycle kinds.
const (
	// RoleCreated is dispatched when a role is created.
	RoleCreated Kind = "role:created"

	// RoleUpdated is dispatched when a role is modified.
	RoleUpdated Kind = "role:updated"

	// RoleDeleted is dispatched when a role is removed.
	RoleDeleted Kind = "role:deleted"
)

// Permission lifecycle kinds.
const (
	// PermissionCreated is dispatched when a permission is created.
	PermissionCreated Kind = "permission:created"

	// PermissionUpdated is dispatched when a permission is modified.
	PermissionUpdated Kind = "permission:updated"

	// PermissionDeleted is dispatched when a permission is removed.
	PermissionDeleted Kind = "permission:deleted"
)

// Capability lifecycle kinds.
const (
	// CapabilityCreated is dispatched when a capability is created.
	CapabilityCreated Kind = "capability:created"

	// CapabilityUpdated is dispatched when a capability is modified.
	CapabilityUpdated Kind = "capability:updated"

	// CapabilityDeleted is dispatched when a capability is removed.
	CapabilityDeleted Kind = "capability:deleted"
)
