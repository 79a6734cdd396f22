package luabind

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/handle"
)

// trackerKey is the registry slot holding a state's open handles. The
// registry is shared by coroutines of the same state.
const trackerKey = "luacene.handles"

// tracker owns the handles a Lua state opened. Handles closed by the script
// are dropped; the rest are released when the state is closed through the
// Binding.
type tracker struct {
	table *handle.Table
	ids   map[handle.Releaser]string
}

func lookupTracker(L *lua.LState) *tracker {
	if ud, ok := L.G.Registry.RawGetString(trackerKey).(*lua.LUserData); ok {
		if t, ok := ud.Value.(*tracker); ok {
			return t
		}
	}
	return nil
}

func trackerOf(L *lua.LState) *tracker {
	if t := lookupTracker(L); t != nil {
		return t
	}
	t := &tracker{table: handle.NewTable(), ids: make(map[handle.Releaser]string)}
	ud := L.NewUserData()
	ud.Value = t
	L.G.Registry.RawSetString(trackerKey, ud)
	return t
}

func (t *tracker) add(h handle.Releaser) {
	t.ids[h] = t.table.Put(h)
}

// release releases h and stops tracking it. Untracked handles are
// released directly, which is a no-op after the first release.
func (t *tracker) release(h handle.Releaser) error {
	id, ok := t.ids[h]
	if !ok {
		return h.Release()
	}
	delete(t.ids, h)
	return t.table.Release(id)
}

// close releases every handle still open: hit sets, then searchers, then
// writers, so writers flush last.
func (t *tracker) close() error {
	clear(t.ids)
	return t.table.Close()
}

// CloseState releases every handle L still holds and closes L. Writers
// left open by the script are flushed. It returns the first release error.
func (b *Binding) CloseState(L *lua.LState) error {
	var err error
	if t := lookupTracker(L); t != nil {
		n := t.table.Len()
		err = t.close()
		if n > 0 {
			b.log.Debug("released handles left open by script", zap.Int("handles", n), zap.Error(err))
		}
	}
	L.Close()
	return err
}
