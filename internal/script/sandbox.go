package script

import lua "github.com/yuin/gopher-lua"

// sandbox strips globals that would let a script reach outside the
// bound addon module.
func sandbox(L *lua.LState) {
	// Code-loading primitives bypass the sandbox entirely.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	// Host process and filesystem access.
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)
}
