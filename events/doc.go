// Package events defines the built-in catalog of event kinds for the
// emit registry.
//
// Each kind is an opaque label with no behavior attached; the registry
// neither interprets nor validates them. Kinds are grouped by the
// entity they describe:
//
//   - Log events: severity notifications (log:debug .. log:fatal)
//   - Server events: process lifecycle (server:started, ...)
//   - User events: account lifecycle and sessions
//   - Access events: role, permission, and capability lifecycle
//   - Route events: route registration and resolution
//
// # Usage
//
//	reg := emit.New[events.Kind, map[string]any]()
//
//	reg.Subscribe(events.ServerStarted, func(payload map[string]any) {
//	    fmt.Println("listening on", payload["addr"])
//	})
//
//	reg.Dispatch(events.ServerStarted, map[string]any{"addr": ":8080"})
//
// The catalog is a convenience, not a contract: the registry is generic
// over any comparable kind type, and consumers are free to define their
// own catalogs alongside or instead of this one.
package events
