package cache

import (
	"testing"
	"time"

	"github.com/1adityakadam/financial-calculators/internal/session"
)

func TestKeyIsStable(t *testing.T) {
	msgs := []session.Message{
		{Role: session.RoleUser, Content: "gold prices"},
		{Role: session.RoleAssistant, Content: "Precious metals are..."},
	}
	if Key("prompt", msgs) != Key("prompt", msgs) {
		t.Error("identical inputs produced different keys")
	}
}

func TestKeyVaries(t *testing.T) {
	msgs := []session.Message{{Role: session.RoleUser, Content: "gold prices"}}
	base := Key("prompt", msgs)
	if Key("other prompt", msgs) == base {
		t.Error("key ignores the system prompt")
	}
	if Key("prompt", []session.Message{{Role: session.RoleUser, Content: "silver prices"}}) == base {
		t.Error("key ignores message content")
	}
	if Key("prompt", []session.Message{{Role: session.RoleAssistant, Content: "gold prices"}}) == base {
		t.Error("key ignores message role")
	}
}

func TestGetPut(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("Get() on empty cache reported a hit")
	}
	c.Put("k", "cached reply")
	got, ok := c.Get("k")
	if !ok || got != "cached reply" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", got, ok, "cached reply")
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Nanosecond)
	c.Put("k", "stale")
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get() returned an expired entry")
	}
	// The expired entry is dropped, not just hidden.
	if _, loaded := c.entries.Load("k"); loaded {
		t.Error("expired entry still stored")
	}
}

func TestZeroTTLUsesDefault(t *testing.T) {
	c := New(0)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}
