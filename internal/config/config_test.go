package config

import (
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "value")
	if got := Get("CFG_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("Get = %q, want value", got)
	}
	if got := Get("CFG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get = %q, want fallback", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("CFG_TEST_DUR", "15s")
	if got := Duration("CFG_TEST_DUR", time.Minute); got != 15*time.Second {
		t.Fatalf("Duration = %v, want 15s", got)
	}

	t.Setenv("CFG_TEST_DUR", "garbage")
	if got := Duration("CFG_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("Duration = %v, want fallback on parse error", got)
	}

	if got := Duration("CFG_TEST_DUR_MISSING", time.Minute); got != time.Minute {
		t.Fatalf("Duration = %v, want fallback when unset", got)
	}
}
