package logger

import "testing"

func TestScrubRedactsCredentials(t *testing.T) {
	out := scrub([]interface{}{
		"password", "hunter22",
		"refresh_token", "abc",
		"user_id", "u-1",
		"header", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig",
		"dangling",
	})
	if len(out) != 9 {
		t.Fatalf("expected 9 values, got %d", len(out))
	}
	if out[1] != redacted || out[3] != redacted {
		t.Fatalf("secret keys not redacted: %v", out)
	}
	if out[5] != "u-1" {
		t.Fatalf("plain value changed: %v", out[5])
	}
	if out[7] != redacted {
		t.Fatalf("jwt-looking value not redacted: %v", out[7])
	}
	if out[8] != "dangling" {
		t.Fatalf("odd trailing key dropped: %v", out)
	}
}

func TestScrubMasksEmails(t *testing.T) {
	out := scrub([]interface{}{"email", "alice@example.com", "meta", map[string]interface{}{"reporter_email": "bob@example.com"}})
	if out[1] != "a***@example.com" {
		t.Fatalf("email not masked: %v", out[1])
	}
	meta := out[3].(map[string]interface{})
	if meta["reporter_email"] != "b***@example.com" {
		t.Fatalf("nested email not masked: %v", meta)
	}
	if got := maskEmail("not-an-email"); got != "not-an-email" {
		t.Fatalf("non-email changed: %q", got)
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("quiet", "k", "v")
	l.With("a", 1).Debug("still quiet")
}

func TestNewRejectsBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := New("development"); err == nil {
		t.Fatalf("expected error for invalid LOG_LEVEL")
	}
}
