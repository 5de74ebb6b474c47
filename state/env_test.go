package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"

	"vbhc/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("environment start time not set")
	}
	if env.CodePage != nil || env.Overwrite {
		t.Error("fresh environment must not carry convert options")
	}
}

func TestEnvFromContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when env is not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestEnvFromContextSharesInstance(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	EnvFromContext(ctx).Overwrite = true
	EnvFromContext(ctx).CodePage = charmap.Windows1258

	env := EnvFromContext(ctx)
	if !env.Overwrite {
		t.Error("Overwrite set through one lookup is not visible in another")
	}
	if env.CodePage != charmap.Windows1258 {
		t.Errorf("CodePage = %v, want Windows1258", env.CodePage)
	}
}

func TestLocalEnvUptime(t *testing.T) {
	env := &LocalEnv{start: time.Now()}
	for _, delay := range []time.Duration{5 * time.Millisecond, 10 * time.Millisecond} {
		time.Sleep(delay)
		if up := env.Uptime(); up < delay {
			t.Errorf("after %v uptime is %v", delay, up)
		}
	}
}

func TestLocalEnvStdLog(t *testing.T) {
	tests := []struct {
		name        string
		log         bool
		redirect    bool
		wantRestore bool
	}{
		{"logger with redirect", true, true, true},
		{"logger without redirect", true, false, false},
		{"no logger", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &LocalEnv{Cfg: &config.Config{Version: 1}, Rpt: &config.Report{}}
			if tt.log {
				env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
			}
			if tt.redirect {
				env.RedirectStdLog()
			}
			if got := env.restoreStdLog != nil; got != tt.wantRestore {
				t.Errorf("restoreStdLog set = %v, want %v", got, tt.wantRestore)
			}
			// must never panic
			env.RestoreStdLog()
		})
	}
}
