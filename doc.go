// Package emit provides a process-local, synchronous publish/subscribe
// registry: an ordered mapping from event kinds to sets of listener
// callbacks.
//
// A Registry is an explicit value owned by the application's composition
// root. There is no package-level singleton; components that publish or
// subscribe receive a *Registry by reference, which keeps tests isolated
// and avoids hidden global state.
//
// # Basic Usage
//
//	reg := emit.New[events.Kind, map[string]any]()
//
//	reg.Subscribe(events.UserCreated, func(payload map[string]any) {
//	    fmt.Println("user created:", payload["id"])
//	})
//
//	reg.Dispatch(events.UserCreated, map[string]any{"id": 7})
//
// The kind type is any comparable identifier. The events subpackage
// provides a ready-made catalog of string kinds, but any consumer may
// define its own catalog and payload shape.
//
// # Dispatch Semantics
//
// Dispatch is fully synchronous: it invokes every listener registered
// for the kind, in the order they were subscribed, and does not return
// until the last listener has returned. The listener set is snapshotted
// when dispatch begins, so a listener subscribed during an in-progress
// pass is not invoked by that pass, and a listener unsubscribed during
// a pass is still invoked by it. Listeners may freely call Subscribe,
// Unsubscribe, or Dispatch from inside a dispatch.
//
// Listener panics are not caught; they unwind through Dispatch to its
// caller. A one-shot listener registered with Once is removed even when
// it panics.
//
// # Listener Identity
//
// Go functions are not comparable, so listeners are identified by their
// code pointer. Each kind holds a listener at most once; re-subscribing
// the same function is a no-op, and Unsubscribe removes by the same
// identity. Note that distinct closures created from the same function
// literal share a code pointer and are therefore treated as the same
// listener.
//
// # Thread Safety
//
// All Registry operations are safe for concurrent use. Listeners are
// invoked outside the registry's internal lock.
//
// # Subpackages
//
//   - events: built-in catalog of event kind constants
//   - notify: file-change watcher that dispatches into a registry
//   - script: Lua bridge exposing a registry to embedded scripts
package emit
