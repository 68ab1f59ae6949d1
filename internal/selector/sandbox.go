package selector

import (
	lua "github.com/yuin/gopher-lua"
)

// openLibs are the only libraries loaded into a selector VM. package, os,
// io, debug, channel and coroutine are never opened.
var openLibs = []struct {
	name string
	fn   lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// sandbox removes the basic functions that load chunks from files or
// strings. Together with openLibs this leaves no way to read the disk or
// run code other than the script itself.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"package",
		"require",
		"module",
		"dofile",
		"loadfile",
		"load",
		"loadstring",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range openLibs {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	sandbox(L)
	return L
}
