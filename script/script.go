// Package script exposes an emit registry to embedded Lua scripts.
//
// A Module binds on/off/once/emit functions into a gopher-lua state as
// a global "events" table. Lua handlers are stored in a Lua-side table
// so they are never garbage collected while subscribed, and the bridge
// registers a single Go fan-out listener per kind, so any number of Lua
// handlers can share one registry slot.
//
// gopher-lua states are not goroutine-safe: events must be dispatched
// on the goroutine that owns the LState.
package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/emit"
)

// Module implements the Lua "events" API over a registry.
type Module struct {
	registry *emit.Registry[string, map[string]any]
	name     string

	mu         sync.Mutex
	L          *lua.LState
	handlerTbl *lua.LTable // Lua-side table anchoring handler functions
	handlerKey string      // global key for the handler table
	handlers   map[string]handlerInfo
	byKind     map[string][]string // kind -> handler ids in subscription order
	fanouts    map[string]emit.Listener[map[string]any]
	nextID     uint64
}

// handlerInfo tracks a single Lua handler registration.
type handlerInfo struct {
	kind string
	once bool
}

// NewModule creates a Module dispatching through registry. The name
// namespaces kinds emitted from Lua and is stamped into their payloads;
// it may be empty.
func NewModule(registry *emit.Registry[string, map[string]any], name string) *Module {
	key := "script"
	if name != "" {
		key = name
	}
	return &Module{
		registry:   registry,
		name:       name,
		handlerKey: "_emit_handlers_" + key,
		handlers:   make(map[string]handlerInfo),
		byKind:     make(map[string][]string),
		fanouts:    make(map[string]emit.Listener[map[string]any]),
	}
}

// Register binds the events API into the Lua state.
func (m *Module) Register(L *lua.LState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.L = L
	m.handlerTbl = L.NewTable()
	L.SetGlobal(m.handlerKey, m.handlerTbl)

	mod := L.NewTable()
	L.SetField(mod, "on", L.NewFunction(m.on))
	L.SetField(mod, "off", L.NewFunction(m.off))
	L.SetField(mod, "once", L.NewFunction(m.once))
	L.SetField(mod, "emit", L.NewFunction(m.emit))
	L.SetGlobal("events", mod)

	return nil
}

// Cleanup unsubscribes every Lua handler and releases handler
// references. Call when the owning script is unloaded.
func (m *Module) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for kind, fn := range m.fanouts {
		m.registry.Unsubscribe(kind, fn)
	}

	if m.L != nil {
		m.L.SetGlobal(m.handlerKey, lua.LNil)
	}

	m.L = nil
	m.handlerTbl = nil
	m.handlers = make(map[string]handlerInfo)
	m.byKind = make(map[string][]string)
	m.fanouts = make(map[string]emit.Listener[map[string]any])
}

// on(kind, handler) -> id
// Subscribes a Lua handler to kind.
func (m *Module) on(L *lua.LState) int {
	return m.subscribe(L, false)
}

// once(kind, handler) -> id
// Subscribes a Lua handler to kind for a single delivery.
func (m *Module) once(L *lua.LState) int {
	return m.subscribe(L, true)
}

// off(id) -> bool
// Removes a handler registration. Returns true if it existed.
func (m *Module) off(L *lua.LState) int {
	id := L.CheckString(1)
	if id == "" {
		L.ArgError(1, "handler id cannot be empty")
		return 0
	}

	m.mu.Lock()
	_, exists := m.handlers[id]
	if exists {
		m.removeLocked(id)
	}
	m.mu.Unlock()

	L.Push(lua.LBool(exists))
	return 1
}

// emit(kind, data?)
// Dispatches an event from Lua. The kind is namespaced with the module
// name when one is set.
func (m *Module) emit(L *lua.LState) int {
	kind := L.CheckString(1)
	if kind == "" {
		L.ArgError(1, "event kind cannot be empty")
		return 0
	}

	var data map[string]any
	if L.GetTop() >= 2 {
		if tbl := L.OptTable(2, nil); tbl != nil {
			data = tableToMap(tbl)
		}
	}
	if data == nil {
		data = make(map[string]any)
	}

	fullKind := kind
	source := "script"
	if m.name != "" {
		fullKind = m.name + ":" + kind
		source = "script:" + m.name
	}
	data["source"] = source

	m.registry.Dispatch(fullKind, data)
	return 0
}

// subscribe registers a Lua handler and ensures a fan-out listener
// exists for its kind.
func (m *Module) subscribe(L *lua.LState, once bool) int {
	kind := L.CheckString(1)
	handler := L.CheckFunction(2)

	if kind == "" {
		L.ArgError(1, "event kind cannot be empty")
		return 0
	}

	m.mu.Lock()
	m.nextID++
	id := fmt.Sprintf("%s_%d", m.handlerKey, m.nextID)

	if m.handlerTbl != nil {
		m.handlerTbl.RawSetString(id, handler)
	}
	m.handlers[id] = handlerInfo{kind: kind, once: once}
	m.byKind[kind] = append(m.byKind[kind], id)

	if _, ok := m.fanouts[kind]; !ok {
		fn := m.fanout(kind)
		m.fanouts[kind] = fn
		m.mu.Unlock()
		m.registry.Subscribe(kind, fn)
	} else {
		m.mu.Unlock()
	}

	L.Push(lua.LString(id))
	return 1
}

// fanout returns the Go listener that delivers a dispatch to every Lua
// handler registered for kind. One-shot handlers are removed before
// their invocation, so a failing handler is still consumed. Handler
// errors are contained with PCall and do not unwind the dispatch.
func (m *Module) fanout(kind string) emit.Listener[map[string]any] {
	return func(data map[string]any) {
		m.mu.Lock()
		L := m.L
		tbl := m.handlerTbl
		ids := append([]string(nil), m.byKind[kind]...)
		m.mu.Unlock()

		if L == nil || tbl == nil {
			return
		}

		for _, id := range ids {
			handler := L.GetField(tbl, id)

			m.mu.Lock()
			info, exists := m.handlers[id]
			if exists && info.once {
				m.removeLocked(id)
			}
			m.mu.Unlock()

			if !exists || handler.Type() != lua.LTFunction {
				continue
			}

			L.Push(handler)
			L.Push(mapToTable(L, data))
			if err := L.PCall(1, 0, nil); err != nil {
				_ = err
			}
		}
	}
}

// removeLocked drops a handler registration and, when it was the last
// one for its kind, unsubscribes the kind's fan-out listener. Caller
// holds m.mu.
func (m *Module) removeLocked(id string) {
	info, exists := m.handlers[id]
	if !exists {
		return
	}
	delete(m.handlers, id)

	ids := m.byKind[info.kind]
	for i, have := range ids {
		if have == id {
			m.byKind[info.kind] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	if m.handlerTbl != nil {
		m.handlerTbl.RawSetString(id, lua.LNil)
	}

	if len(m.byKind[info.kind]) == 0 {
		delete(m.byKind, info.kind)
		if fn, ok := m.fanouts[info.kind]; ok {
			delete(m.fanouts, info.kind)
			m.registry.Unsubscribe(info.kind, fn)
		}
	}
}
