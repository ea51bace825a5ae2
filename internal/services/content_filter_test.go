package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
)

func newTestFilter(t *testing.T) ContentFilter {
	t.Helper()
	f, err := NewContentFilter(testutil.Logger(t), "")
	if err != nil {
		t.Fatalf("NewContentFilter: %v", err)
	}
	return f
}

func TestModerateTextKeywordsMatchWholeWords(t *testing.T) {
	f := newTestFilter(t)
	cases := []struct {
		text   string
		flag   bool
		reason string
	}{
		{"This is a SCAM offer", true, "Profanity detected: scam"},
		{"fake and fraud", true, "Profanity detected: fake, fraud"},
		{"Scampi recipes and spammer lists", false, ""},
		{"Senior product designer", false, ""},
		{"", false, ""},
	}
	for _, tc := range cases {
		flag, reason := f.ModerateText(tc.text)
		if flag != tc.flag || reason != tc.reason {
			t.Fatalf("ModerateText(%q) = (%v, %q), want (%v, %q)", tc.text, flag, reason, tc.flag, tc.reason)
		}
	}
}

func TestModerateTextSpamPatterns(t *testing.T) {
	f := newTestFilter(t)
	flagged := []string{
		"Click HERE for details",
		"see https://example.com/x",
		"call 5551234567890",
		"HIRING designers",
	}
	for _, text := range flagged {
		if flag, reason := f.ModerateText(text); !flag || reason != "Spam patterns detected" {
			t.Fatalf("expected spam flag for %q, got (%v, %q)", text, flag, reason)
		}
	}
	clean := []string{"Hiring Designers", "phone 555-1234", "UI UX work"}
	for _, text := range clean {
		if flag, reason := f.ModerateText(text); flag {
			t.Fatalf("unexpected flag for %q: %q", text, reason)
		}
	}
}

func TestCheckListingCombinesReasons(t *testing.T) {
	f := newTestFilter(t)
	flag, reason := f.CheckListing(&types.Listing{
		Title:          "Great role",
		Description:    "no scam here",
		SkillsRequired: datatypes.JSONSlice[string]{"Figma", "BUYNOW"},
	})
	if !flag {
		t.Fatalf("expected listing to be flagged")
	}
	want := "Description: Profanity detected: scam; Skill: Spam patterns detected"
	if reason != want {
		t.Fatalf("reason = %q, want %q", reason, want)
	}
}

func TestCheckProfileClean(t *testing.T) {
	f := newTestFilter(t)
	flag, reason := f.CheckProfile(&types.Profile{
		Headline: "Brand designer",
		Bio:      "Ten years of identity work.",
		Skills:   datatypes.JSONSlice[string]{"Illustrator"},
	})
	if flag || reason != "" {
		t.Fatalf("expected clean profile, got (%v, %q)", flag, reason)
	}
}

func TestNewContentFilterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("keywords:\n  - banana\n"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	f, err := NewContentFilter(testutil.Logger(t), path)
	if err != nil {
		t.Fatalf("NewContentFilter: %v", err)
	}
	if flag, reason := f.ModerateText("Banana bread"); !flag || !strings.Contains(reason, "banana") {
		t.Fatalf("custom keyword not applied: (%v, %q)", flag, reason)
	}
	if flag, _ := f.ModerateText("scam"); flag {
		t.Fatalf("default keywords should be replaced by file rules")
	}
}
