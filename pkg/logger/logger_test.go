package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggerUsableBeforeInit(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("expected nop logger before init")
	}
	Info(context.Background(), "before init")
}

func TestInitAndContextLogging(t *testing.T) {
	Init("development")
	if GetLogger() == nil {
		t.Fatal("expected logger initialized")
	}

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-1")
	if WithContext(ctx) == nil {
		t.Fatal("expected contextual logger")
	}

	Info(ctx, "info", zap.String("k", "v"))
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
	LogRequest(ctx, "POST", "/api/v1/appointments", 409, time.Millisecond, "127.0.0.1")
	LogRequest(ctx, "GET", "/api/v1/me/lifecycle", 503, time.Millisecond, "127.0.0.1")
	Sync()
}

func TestWithContextNil(t *testing.T) {
	Init("development")
	//nolint:staticcheck
	if WithContext(nil) == nil {
		t.Fatal("expected base logger for nil context")
	}
}

func TestWithContextTypedRequestID(t *testing.T) {
	Init("development")
	ctx := context.WithValue(context.Background(), RequestIDKey, "typed-req-id")
	if WithContext(ctx) == nil {
		t.Fatal("expected logger with typed request id context")
	}
}

func TestInit_ProductionAndSetLevel(t *testing.T) {
	// reset package singleton to cover production init branch deterministically
	log = zap.NewNop()
	once = sync.Once{}
	atom = zap.AtomicLevel{}

	SetLevel(zapcore.DebugLevel)

	Init("production")
	if GetLogger() == nil {
		t.Fatal("expected production logger initialized")
	}
	SetLevel(zapcore.WarnLevel)
	if atom.Level() != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %s", atom.Level())
	}

	if WithContext(context.Background()) == nil {
		t.Fatal("expected logger without contextual fields")
	}
}
