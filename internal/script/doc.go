// Package script hosts Lua-scripted addon handlers.
//
// An Engine owns one sandboxed Lua state bound to a signal hub and a
// directory registry. Scripts see a single `addon` module:
//
//	addon.write(dir, file, value)    -- persist a value
//	addon.read(dir, file)            -- load a value (nil when absent)
//	addon.exists(dir, file)          -- presence check
//	addon.delete(dir, file)          -- remove a file
//	addon.list(dir)                  -- file names as an array
//	addon.on(channel, fn)            -- subscribe to a hub channel
//	addon.emit(emitter, data)        -- emit a custom signal
//
// Channel names for addon.on are "ready", "settings", "extension", and
// "custom"; the handler receives one table describing the event.
//
// The host execution model is single-threaded and cooperative, and hub
// emission is synchronous, so Lua handlers run on the goroutine that calls
// Emit. The Engine is not safe for concurrent use from multiple goroutines;
// gopher-lua's LState never is.
//
// Scripts run inside a sandbox: file loading primitives and the os/io
// libraries are stripped, so a script's only effects flow through the
// bound addon module.
package script
