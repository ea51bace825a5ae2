package profiles

import (
	"testing"

	"gorm.io/datatypes"

	types "github.com/yungbote/designhire-backend/internal/domain"
)

func fullProfile() *types.Profile {
	rate := 85.0
	return &types.Profile{
		Headline:         "Product designer",
		Bio:              "Design systems and research.",
		Skills:           datatypes.JSONSlice[string]{"Figma"},
		PortfolioLinks:   datatypes.JSONSlice[types.PortfolioLink]{{URL: "https://dribbble.com/me"}},
		Availability:     "full-time",
		HourlyRate:       &rate,
		Location:         "Berlin",
		RemotePreference: "remote",
		MediaRefs: datatypes.NewJSONType(types.MediaRefs{
			ProfileImage: "image/u/20250101/abc.png",
			Gallery:      []string{"image/u/20250101/def.png"},
		}),
	}
}

func TestScoreBounds(t *testing.T) {
	if got := Score(fullProfile()); got != 100 {
		t.Fatalf("full profile score = %d, want 100", got)
	}
	if got := Score(&types.Profile{}); got != 0 {
		t.Fatalf("empty profile score = %d, want 0", got)
	}
	if got := Score(nil); got != 0 {
		t.Fatalf("nil profile score = %d, want 0", got)
	}
}

func TestScoreCountsEachField(t *testing.T) {
	zero := 0.0
	cases := []struct {
		name string
		p    *types.Profile
		want int
	}{
		{"headline only", &types.Profile{Headline: "x"}, 10},
		{"whitespace is absent", &types.Profile{Headline: "   ", Bio: "\t"}, 0},
		{"zero hourly rate counts", &types.Profile{HourlyRate: &zero}, 10},
		{"empty gallery does not count", &types.Profile{MediaRefs: datatypes.NewJSONType(types.MediaRefs{Gallery: []string{}})}, 0},
		{"image and gallery", &types.Profile{MediaRefs: datatypes.NewJSONType(types.MediaRefs{ProfileImage: "k", Gallery: []string{"g"}})}, 20},
	}
	for _, tc := range cases {
		if got := Score(tc.p); got != tc.want {
			t.Fatalf("%s: score = %d, want %d", tc.name, got, tc.want)
		}
	}

	p := fullProfile()
	p.Location = ""
	if got := Score(p); got != 90 {
		t.Fatalf("missing location score = %d, want 90", got)
	}
}
