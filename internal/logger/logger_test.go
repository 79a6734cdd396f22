package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env     string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"prod", "", zapcore.InfoLevel, false},
		{"local", "", zapcore.DebugLevel, false},
		{"test", "", zapcore.DebugLevel, false},
		{"dev", "warn", zapcore.WarnLevel, false},
		{"prod", "debug", zapcore.DebugLevel, false},
		{"staging", "", 0, true},
		{"prod", "loud", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.env+"/"+tc.level, func(t *testing.T) {
			l, err := New(Config{Env: tc.env, Level: tc.level, Version: "v0.0.0-test"})
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !l.Core().Enabled(tc.want) {
				t.Errorf("level %v not enabled", tc.want)
			}
			if tc.want > zapcore.DebugLevel && l.Core().Enabled(tc.want-1) {
				t.Errorf("level below %v enabled", tc.want)
			}
		})
	}
}

func TestFromContext_Empty(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() on empty context returned nil")
	}
	if FromContext(WithLogger(context.Background(), nil)) == nil {
		t.Fatal("FromContext() with a nil logger returned nil")
	}
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = WithFields(ctx, zap.String("script", "a.lua"))

	FromContext(ctx).Info("done")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["script"]; got != "a.lua" {
		t.Errorf("script field = %v, want a.lua", got)
	}
}
