package envutil

import (
	"testing"
	"time"
)

func TestParsers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "nope")
	t.Setenv("X_BOOL", "off")
	t.Setenv("X_DUR", "250ms")
	t.Setenv("X_DUR_SECS", "3")
	t.Setenv("X_LIST", " a, ,b ")
	t.Setenv("X_FLOAT", "0.25")

	if got := Int("X_INT", 1, nil); got != 42 {
		t.Fatalf("Int = %d", got)
	}
	if got := Int("X_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int fallback = %d", got)
	}
	if got := Bool("X_BOOL", true, nil); got {
		t.Fatalf("Bool = %v", got)
	}
	if got := Duration("X_DUR", time.Second, nil); got != 250*time.Millisecond {
		t.Fatalf("Duration = %v", got)
	}
	if got := Duration("X_DUR_SECS", time.Second, nil); got != 3*time.Second {
		t.Fatalf("Duration secs = %v", got)
	}
	if got := Seconds("X_MISSING", 30*time.Minute, nil); got != 30*time.Minute {
		t.Fatalf("Seconds default = %v", got)
	}
	if got := Float("X_FLOAT", 0.1, nil); got != 0.25 {
		t.Fatalf("Float = %v", got)
	}
	got := List("X_LIST", nil, nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List = %v", got)
	}
}
