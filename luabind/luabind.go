package luabind

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/facade"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "luacene"

const (
	writerType   = "luacene.writer"
	searcherType = "luacene.searcher"
	hitsType     = "luacene.hits"
)

// Binding loads the luacene module into Lua states.
type Binding struct {
	eng *facade.Engine
	log *zap.Logger
}

// New creates a Binding over eng. A nil logger disables logging.
func New(eng *facade.Engine, log *zap.Logger) *Binding {
	if log == nil {
		log = zap.NewNop()
	}
	return &Binding{eng: eng, log: log}
}

// Preload makes require("luacene") available in L.
func (b *Binding) Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, b.Loader)
}

// Loader is the lua.LGFunction that builds the module table.
func (b *Binding) Loader(L *lua.LState) int {
	b.registerTypes(L)
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"writer":   b.openWriter,
		"searcher": b.openSearcher,
	})
	L.SetField(mod, "charset", lua.LString(b.eng.Codec().Charset()))
	L.Push(mod)
	return 1
}

func (b *Binding) registerTypes(L *lua.LState) {
	wmt := L.NewTypeMetatable(writerType)
	L.SetField(wmt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"addDocument": b.addDocument,
		"flush":       b.flush,
		"optimize":    b.optimize,
		"count":       b.count,
		"close":       b.closeWriter,
	}))
	L.SetField(wmt, "__tostring", L.NewFunction(b.writerString))

	smt := L.NewTypeMetatable(searcherType)
	L.SetField(smt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"search": b.search,
		"close":  b.closeSearcher,
	}))
	L.SetField(smt, "__tostring", L.NewFunction(b.searcherString))

	hmt := L.NewTypeMetatable(hitsType)
	L.SetField(hmt, "__index", L.NewFunction(b.hitsIndex))
	L.SetField(hmt, "__len", L.NewFunction(b.hitsLen))
	L.SetField(hmt, "__tostring", L.NewFunction(b.hitsString))
}

func (b *Binding) wrap(L *lua.LState, v any, typeName string) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	return ud
}

func contextOf(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// fail pushes nil and the error message. Use after release raises
// instead, since it is a script bug rather than a runtime condition.
func (b *Binding) fail(L *lua.LState, err error) int {
	if errors.Is(err, facade.ErrUseAfterRelease) {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

func (b *Binding) ok(L *lua.LState, err error) int {
	if err != nil {
		return b.fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (b *Binding) openWriter(L *lua.LState) int {
	path := L.CheckString(1)
	w, err := b.eng.OpenWriter(path)
	if err != nil {
		return b.fail(L, err)
	}
	trackerOf(L).add(w)
	L.Push(b.wrap(L, w, writerType))
	return 1
}

func (b *Binding) openSearcher(L *lua.LState) int {
	path := L.CheckString(1)
	s, err := b.eng.OpenSearcher(path)
	if err != nil {
		return b.fail(L, err)
	}
	trackerOf(L).add(s)
	L.Push(b.wrap(L, s, searcherType))
	return 1
}

func checkWriter(L *lua.LState) *facade.Writer {
	ud := L.CheckUserData(1)
	if w, ok := ud.Value.(*facade.Writer); ok {
		return w
	}
	L.ArgError(1, "writer expected")
	return nil
}

func checkSearcher(L *lua.LState) *facade.Searcher {
	ud := L.CheckUserData(1)
	if s, ok := ud.Value.(*facade.Searcher); ok {
		return s
	}
	L.ArgError(1, "searcher expected")
	return nil
}

func checkHits(L *lua.LState) *facade.Hits {
	ud := L.CheckUserData(1)
	if hs, ok := ud.Value.(*facade.Hits); ok {
		return hs
	}
	L.ArgError(1, "hit set expected")
	return nil
}

// addDocument raises on every failure, unlike the other writer methods.
func (b *Binding) addDocument(L *lua.LState) int {
	w := checkWriter(L)
	t := L.CheckTable(2)
	if err := w.AddDocument(tableMapping{t}); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (b *Binding) flush(L *lua.LState) int {
	return b.ok(L, checkWriter(L).Flush())
}

func (b *Binding) optimize(L *lua.LState) int {
	return b.ok(L, checkWriter(L).Optimize(contextOf(L)))
}

func (b *Binding) count(L *lua.LState) int {
	n, err := checkWriter(L).DocCount()
	if err != nil {
		return b.fail(L, err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (b *Binding) closeWriter(L *lua.LState) int {
	return b.ok(L, trackerOf(L).release(checkWriter(L)))
}

func (b *Binding) writerString(L *lua.LState) int {
	w := checkWriter(L)
	L.Push(lua.LString(handleString(writerType, w.Path(), w.Live())))
	return 1
}

func (b *Binding) search(L *lua.LState) int {
	s := checkSearcher(L)
	q := L.CheckString(2)
	hits, err := s.Search(contextOf(L), q)
	if err != nil {
		return b.fail(L, err)
	}
	trackerOf(L).add(hits)
	L.Push(b.wrap(L, hits, hitsType))
	return 1
}

func (b *Binding) closeSearcher(L *lua.LState) int {
	return b.ok(L, trackerOf(L).release(checkSearcher(L)))
}

func (b *Binding) searcherString(L *lua.LState) int {
	s := checkSearcher(L)
	L.Push(lua.LString(handleString(searcherType, s.Path(), s.Live())))
	return 1
}

// hitsIndex resolves positional hits and the length and close members.
func (b *Binding) hitsIndex(L *lua.LState) int {
	hs := checkHits(L)
	switch key := L.Get(2).(type) {
	case lua.LNumber:
		pos := int(key)
		if lua.LNumber(pos) != key {
			L.ArgError(2, "hit position must be an integer")
			return 0
		}
		doc, err := hs.At(pos)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(documentTable(L, doc))
		return 1
	case lua.LString:
		switch key {
		case "length":
			return b.hitsLen(L)
		case "close":
			L.Push(L.NewFunction(b.closeHits))
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

func (b *Binding) hitsLen(L *lua.LState) int {
	n, err := checkHits(L).Len()
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (b *Binding) closeHits(L *lua.LState) int {
	return b.ok(L, trackerOf(L).release(checkHits(L)))
}

func (b *Binding) hitsString(L *lua.LState) int {
	hs := checkHits(L)
	if !hs.Live() {
		L.Push(lua.LString(hitsType + " (released)"))
		return 1
	}
	n, _ := hs.Len()
	L.Push(lua.LString(fmt.Sprintf("%s: %d", hitsType, n)))
	return 1
}

func handleString(typeName, path string, live bool) string {
	if !live {
		return fmt.Sprintf("%s: %s (released)", typeName, path)
	}
	return fmt.Sprintf("%s: %s", typeName, path)
}
