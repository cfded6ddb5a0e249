package natsconn

import (
	"errors"
	"testing"
	"time"
)

func TestOptions_Defaults(t *testing.T) {
	t.Setenv("NATS_URL", "nats://example:4222")
	t.Setenv("NATS_MAX_RECONNECTS", "")
	t.Setenv("NATS_RECONNECT_WAIT", "")

	o := Options{}.withDefaults()
	if o.URL != "nats://example:4222" {
		t.Fatalf("expected URL from env, got %q", o.URL)
	}
	if o.MaxReconnects != 5 {
		t.Fatalf("expected 5 reconnects, got %d", o.MaxReconnects)
	}
	if o.ReconnectWait != 2*time.Second {
		t.Fatalf("expected 2s, got %s", o.ReconnectWait)
	}
}

func TestOptions_EnvOverrides(t *testing.T) {
	t.Setenv("NATS_MAX_RECONNECTS", "7")
	t.Setenv("NATS_RECONNECT_WAIT", "3s")

	o := Options{URL: "nats://explicit:4222"}.withDefaults()
	if o.URL != "nats://explicit:4222" {
		t.Fatalf("explicit URL overridden: %q", o.URL)
	}
	if o.MaxReconnects != 7 {
		t.Fatalf("expected 7, got %d", o.MaxReconnects)
	}
	if o.ReconnectWait != 3*time.Second {
		t.Fatalf("expected 3s, got %s", o.ReconnectWait)
	}
}

func TestConnect_NotConfigured(t *testing.T) {
	t.Setenv("NATS_URL", "")
	_, err := Connect(Options{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(Options{
		URL:           "nats://127.0.0.1:19999",
		MaxReconnects: 0,
		ReconnectWait: 10 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error connecting to invalid NATS URL")
	}
}
