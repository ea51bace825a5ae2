package profiles

import (
	"strings"

	types "github.com/yungbote/designhire-backend/internal/domain"
)

const completenessChecks = 10

// Score returns the share of filled profile fields as a percentage.
func Score(p *types.Profile) int {
	if p == nil {
		return 0
	}
	refs := p.MediaRefs.Data()
	checks := []bool{
		present(p.Headline),
		present(p.Bio),
		len(p.Skills) > 0,
		len(p.PortfolioLinks) > 0,
		present(p.Availability),
		p.HourlyRate != nil,
		present(p.Location),
		present(p.RemotePreference),
		present(refs.ProfileImage),
		len(refs.Gallery) > 0,
	}
	matched := 0
	for _, ok := range checks {
		if ok {
			matched++
		}
	}
	return matched * 100 / completenessChecks
}

func present(s string) bool { return strings.TrimSpace(s) != "" }
