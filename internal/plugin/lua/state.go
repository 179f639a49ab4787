// Package lua loads syntax lexers written in Lua.
//
// A lexer script sets the globals language and extensions and defines
// highlight(line, state). highlight returns a list of spans and the state
// to carry into the next line:
//
//	language = "ini"
//	extensions = { ".ini" }
//
//	function highlight(line, state)
//	  local spans = {}
//	  local s, e = string.find(line, "^%[.-%]")
//	  if s then
//	    spans[#spans + 1] = { "keyword", s, e }
//	  end
//	  return spans, state
//	end
//
// Span positions are 1-based and inclusive, as returned by string.find.
// The first element is a scope name such as "keyword" or "comment.line".
package lua

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single highlight call.
const DefaultTimeout = time.Second

// newState creates a Lua state with only the safe standard libraries.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed. Strip the base loaders too.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// call invokes fn with a deadline and recovers from panics inside the VM.
func call(L *lua.LState, timeout time.Duration, fn lua.LValue, nret int, args ...lua.LValue) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	return L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...)
}
