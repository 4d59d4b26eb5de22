package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders empty endpoint: %v", err)
	}
	if providers.TracerProvider == nil || providers.MeterProvider == nil || providers.LoggerProvider == nil {
		t.Fatal("no-op providers should all be non-nil")
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("shutdown should be no-op for empty endpoint, got error: %v", err)
	}
}

func TestNewProviders_WhitespaceEndpoint(t *testing.T) {
	providers, err := NewProviders(context.Background(), "   ", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders whitespace endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
}

func TestNewProviders_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"://invalid", "http://[invalid", "http://"} {
		if _, err := NewProviders(context.Background(), endpoint, "test-service", false); err == nil {
			t.Errorf("NewProviders(%q) should return error", endpoint)
		}
	}
}

func TestSetGlobal(t *testing.T) {
	providers, err := NewProviders(context.Background(), "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}

	oldTracerProvider := otel.GetTracerProvider()
	oldMeterProvider := otel.GetMeterProvider()
	defer func() {
		otel.SetTracerProvider(oldTracerProvider)
		otel.SetMeterProvider(oldMeterProvider)
	}()

	providers.SetGlobal()

	if otel.GetTracerProvider() == oldTracerProvider {
		t.Error("TracerProvider should be updated")
	}
	if otel.GetMeterProvider() == oldMeterProvider {
		t.Error("MeterProvider should be updated")
	}
}

func TestSetGlobal_NilProviders(t *testing.T) {
	providers := &Providers{Shutdown: func(context.Context) error { return nil }}

	// Should not panic
	providers.SetGlobal()
}

func TestProviders_ShutdownIdempotent(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("first shutdown: %v", err)
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("second shutdown: %v", err)
	}
}
