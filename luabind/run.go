package luabind

import (
	"context"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// NewState returns a Lua state with the standard libraries, the luacene
// module preloaded, and ctx attached. The caller closes it with CloseState
// so handles the script left open are released.
func (b *Binding) NewState(ctx context.Context) *lua.LState {
	L := lua.NewState()
	b.Preload(L)
	if ctx != nil {
		L.SetContext(ctx)
	}
	return L
}

// RunFile executes the script at path in a fresh state. Handles the script
// left open are released before RunFile returns.
func (b *Binding) RunFile(ctx context.Context, path string) error {
	L := b.NewState(ctx)

	start := time.Now()
	err := L.DoFile(path)
	if cerr := b.CloseState(L); err == nil {
		err = cerr
	}
	b.log.Debug("script finished",
		zap.String("script", path),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	return err
}

// RunString executes src in a fresh state. globals are set as string
// globals before the script runs.
func (b *Binding) RunString(ctx context.Context, src string, globals map[string]string) error {
	L := b.NewState(ctx)
	for name, v := range globals {
		L.SetGlobal(name, lua.LString(v))
	}
	err := L.DoString(src)
	if cerr := b.CloseState(L); err == nil {
		err = cerr
	}
	return err
}
