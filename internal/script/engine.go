package script

import (
	"encoding/json"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/signal"
	"github.com/dshills/addonkit/internal/storage"
)

// ErrEngineClosed is returned when running a script on a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")

// Options configures an Engine.
type Options struct {
	// CallStackSize bounds the Lua call stack. Zero uses the gopher-lua
	// default.
	CallStackSize int
}

// Engine runs sandboxed Lua scripts bound to a signal hub and a directory
// registry. It is not safe for concurrent use.
type Engine struct {
	L      *lua.LState
	hub    *signal.Hub
	dirs   *storage.Registry
	subs   []*signal.Subscription
	closed bool
}

// New creates an Engine with its own sandboxed Lua state.
func New(hub *signal.Hub, dirs *storage.Registry, opts Options) *Engine {
	L := lua.NewState(lua.Options{CallStackSize: opts.CallStackSize})
	sandbox(L)

	e := &Engine{
		L:    L,
		hub:  hub,
		dirs: dirs,
	}
	e.registerModule()
	return e
}

// Run executes a script source string.
func (e *Engine) Run(src string) error {
	if e.closed {
		return ErrEngineClosed
	}
	if err := e.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close cancels every subscription the engine's scripts made and releases
// the Lua state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for _, sub := range e.subs {
		sub.Cancel()
	}
	e.subs = nil
	e.L.Close()
}

// registerModule installs the `addon` module into the Lua state.
func (e *Engine) registerModule() {
	mod := e.L.NewTable()
	fns := map[string]lua.LGFunction{
		"write":  e.luaWrite,
		"read":   e.luaRead,
		"exists": e.luaExists,
		"delete": e.luaDelete,
		"list":   e.luaList,
		"on":     e.luaOn,
		"emit":   e.luaEmit,
	}
	for name, fn := range fns {
		e.L.SetField(mod, name, e.L.NewFunction(fn))
	}
	e.L.SetGlobal("addon", mod)
}

// luaWrite implements addon.write(dir, file, value).
func (e *Engine) luaWrite(L *lua.LState) int {
	dirName := L.CheckString(1)
	file := L.CheckString(2)
	value := toGoValue(L.CheckAny(3))

	dir, err := e.dirs.New(dirName, true)
	if err != nil {
		L.RaiseError("addon.write: %v", err)
	}
	if err := dir.Write(file, value); err != nil {
		L.RaiseError("addon.write: %v", err)
	}
	return 0
}

// luaRead implements addon.read(dir, file). Missing directories and files
// read as nil.
func (e *Engine) luaRead(L *lua.LState) int {
	dirName := L.CheckString(1)
	file := L.CheckString(2)

	dir, ok := e.dirs.Get(dirName)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	raw, err := dir.Read(file)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		L.Push(lua.LNil)
	case err != nil:
		L.RaiseError("addon.read: %v", err)
	default:
		L.Push(toLuaValue(L, json.RawMessage(raw)))
	}
	return 1
}

// luaExists implements addon.exists(dir, file).
func (e *Engine) luaExists(L *lua.LState) int {
	dirName := L.CheckString(1)
	file := L.CheckString(2)

	dir, ok := e.dirs.Get(dirName)
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(dir.Exists(file)))
	return 1
}

// luaDelete implements addon.delete(dir, file).
func (e *Engine) luaDelete(L *lua.LState) int {
	dirName := L.CheckString(1)
	file := L.CheckString(2)

	dir, ok := e.dirs.Get(dirName)
	if !ok {
		L.RaiseError("addon.delete: no directory %q", dirName)
	}
	if err := dir.Delete(file); err != nil {
		L.RaiseError("addon.delete: %v", err)
	}
	return 0
}

// luaList implements addon.list(dir).
func (e *Engine) luaList(L *lua.LState) int {
	dirName := L.CheckString(1)

	t := L.NewTable()
	if dir, ok := e.dirs.Get(dirName); ok {
		for i, name := range dir.List() {
			t.RawSetInt(i+1, lua.LString(name))
		}
	}
	L.Push(t)
	return 1
}

// luaOn implements addon.on(channel, fn).
func (e *Engine) luaOn(L *lua.LState) int {
	channel := L.CheckString(1)
	fn := L.CheckFunction(2)

	var sub *signal.Subscription
	var err error

	switch channel {
	case "ready":
		sub, err = e.hub.AddonReady.Subscribe(func(ev signal.DescriptorEvent) error {
			t := e.L.NewTable()
			t.RawSetString("id", lua.LString(ev.Descriptor.ID))
			t.RawSetString("name", lua.LString(ev.Descriptor.Name))
			t.RawSetString("version", lua.LString(ev.Descriptor.Version))
			t.RawSetString("namespace", lua.LString(ev.Descriptor.Namespace))
			exts := e.L.NewTable()
			for i, id := range ev.Descriptor.Extensions {
				exts.RawSetInt(i+1, lua.LString(id))
			}
			t.RawSetString("extensions", exts)
			return e.call(fn, t)
		})
	case "settings":
		sub, err = e.hub.SettingsChanged.Subscribe(func(ev signal.SettingsEvent) error {
			t := e.L.NewTable()
			t.RawSetString("settings", toLuaValue(e.L, ev.Settings))
			t.RawSetString("actor", lua.LString(ev.Actor))
			return e.call(fn, t)
		})
	case "extension":
		sub, err = e.hub.ExtensionTriggered.Subscribe(func(ev signal.ExtensionEvent) error {
			t := e.L.NewTable()
			t.RawSetString("extension", lua.LString(ev.ExtensionID))
			t.RawSetString("actor", lua.LString(ev.Actor))
			return e.call(fn, t)
		})
	case "custom":
		sub, err = e.hub.CustomSignal.Subscribe(func(ev signal.CustomSignalEvent) error {
			t := e.L.NewTable()
			t.RawSetString("addon", lua.LString(ev.AddonID))
			t.RawSetString("emitter", lua.LString(ev.EmitterID))
			if ev.Data != nil {
				t.RawSetString("data", toLuaValue(e.L, ev.Data))
			}
			return e.call(fn, t)
		})
	default:
		L.RaiseError("addon.on: unknown channel %q", channel)
		return 0
	}

	if err != nil {
		L.RaiseError("addon.on: %v", err)
	}
	e.subs = append(e.subs, sub)
	return 0
}

// luaEmit implements addon.emit(emitter, data).
func (e *Engine) luaEmit(L *lua.LState) int {
	emitter := L.CheckString(1)

	var data json.RawMessage
	if raw := L.Get(2); raw != lua.LNil {
		encoded, err := json.Marshal(toGoValue(raw))
		if err != nil {
			L.RaiseError("addon.emit: %v", err)
		}
		data = encoded
	}

	e.hub.CustomSignal.Emit(signal.CustomSignalEvent{
		AddonID:   e.dirs.Owner(),
		EmitterID: emitter,
		Data:      data,
	})
	return 0
}

// call invokes a Lua handler with one argument, protected.
func (e *Engine) call(fn *lua.LFunction, arg lua.LValue) error {
	return e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, arg)
}
