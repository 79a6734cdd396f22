package luabind

import (
	"iter"

	lua "github.com/yuin/gopher-lua"

	"github.com/jonwraymond/luacene/document"
)

// tableMapping presents a Lua table as a document.Mapping. Keys and values
// are handed to document.Parse as loosely typed Go values so it can reject
// the ones that do not describe a document.
type tableMapping struct {
	t *lua.LTable
}

func (m tableMapping) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for k, v := m.t.Next(lua.LNil); k != lua.LNil; k, v = m.t.Next(k) {
			if !yield(key(k), fieldValue(v)) {
				return
			}
		}
	}
}

func key(k lua.LValue) any {
	if s, ok := k.(lua.LString); ok {
		return string(s)
	}
	return k
}

func fieldValue(v lua.LValue) any {
	if t, ok := v.(*lua.LTable); ok {
		return descriptor(t)
	}
	return scalar(v)
}

// scalar converts Lua strings and numbers to Go strings, matching Lua's
// own coercion. Other values keep a Go type that document.Parse reports.
func scalar(v lua.LValue) any {
	switch t := v.(type) {
	case lua.LString:
		return string(t)
	case lua.LNumber:
		return t.String()
	case lua.LBool:
		return bool(t)
	default:
		return v
	}
}

// descriptor converts a positional {value, store, index, termVector} or a
// named {value = ...} table.
func descriptor(t *lua.LTable) any {
	if n := t.Len(); n > 0 {
		items := make([]any, n)
		for i := 1; i <= n; i++ {
			items[i-1] = scalar(t.RawGetInt(i))
		}
		if countKeys(t) == n {
			return items
		}
	}
	named := make(map[string]any)
	for k, v := t.Next(lua.LNil); k != lua.LNil; k, v = t.Next(k) {
		named[k.String()] = scalar(v)
	}
	return named
}

func countKeys(t *lua.LTable) int {
	n := 0
	for k, _ := t.Next(lua.LNil); k != lua.LNil; k, _ = t.Next(k) {
		n++
	}
	return n
}

// documentTable copies a host document into a new Lua table.
func documentTable(L *lua.LState, doc document.Document) *lua.LTable {
	t := L.CreateTable(0, doc.Len())
	for _, f := range doc.Fields {
		t.RawSetString(f.Name, lua.LString(f.Value.Text()))
	}
	return t
}
