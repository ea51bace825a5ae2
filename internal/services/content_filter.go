package services

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

//go:embed content_rules.yaml
var defaultContentRules []byte

type ContentRules struct {
	Keywords     []string          `yaml:"keywords"`
	SpamPatterns []SpamPatternRule `yaml:"spam_patterns"`
}

type SpamPatternRule struct {
	Name            string `yaml:"name"`
	Pattern         string `yaml:"pattern"`
	CaseInsensitive bool   `yaml:"case_insensitive"`
}

type ContentFilter interface {
	ModerateText(text string) (bool, string)
	CheckListing(listing *types.Listing) (bool, string)
	CheckProfile(profile *types.Profile) (bool, string)
}

type keywordMatcher struct {
	word string
	re   *regexp.Regexp
}

type contentFilter struct {
	log      *logger.Logger
	keywords []keywordMatcher
	spam     []*regexp.Regexp
}

// NewContentFilter loads rules from rulesPath, or the embedded defaults when empty.
func NewContentFilter(log *logger.Logger, rulesPath string) (ContentFilter, error) {
	raw := defaultContentRules
	if p := strings.TrimSpace(rulesPath); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read moderation rules: %w", err)
		}
		raw = b
	}
	var rules ContentRules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse moderation rules: %w", err)
	}
	return NewContentFilterFromRules(log, rules)
}

func NewContentFilterFromRules(log *logger.Logger, rules ContentRules) (ContentFilter, error) {
	f := &contentFilter{log: log.With("service", "ContentFilter")}
	for _, w := range rules.Keywords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile keyword %q: %w", w, err)
		}
		f.keywords = append(f.keywords, keywordMatcher{word: w, re: re})
	}
	for _, p := range rules.SpamPatterns {
		expr := p.Pattern
		if p.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile spam pattern %q: %w", p.Name, err)
		}
		f.spam = append(f.spam, re)
	}
	f.log.Debug("Moderation rules loaded", "keywords", len(f.keywords), "spam_patterns", len(f.spam))
	return f, nil
}

func (f *contentFilter) ModerateText(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, ""
	}
	var matched []string
	for _, k := range f.keywords {
		if k.re.MatchString(text) {
			matched = append(matched, k.word)
		}
	}
	if len(matched) > 0 {
		return true, "Profanity detected: " + strings.Join(matched, ", ")
	}
	for _, re := range f.spam {
		if re.MatchString(text) {
			return true, "Spam patterns detected"
		}
	}
	return false, ""
}

func (f *contentFilter) CheckListing(listing *types.Listing) (bool, string) {
	if listing == nil {
		return false, ""
	}
	var reasons []string
	reasons = f.appendReason(reasons, "Title", listing.Title)
	reasons = f.appendReason(reasons, "Description", listing.Description)
	for _, s := range listing.SkillsRequired {
		reasons = f.appendReason(reasons, "Skill", s)
	}
	if len(reasons) == 0 {
		return false, ""
	}
	return true, strings.Join(reasons, "; ")
}

func (f *contentFilter) CheckProfile(profile *types.Profile) (bool, string) {
	if profile == nil {
		return false, ""
	}
	var reasons []string
	reasons = f.appendReason(reasons, "Headline", profile.Headline)
	reasons = f.appendReason(reasons, "Bio", profile.Bio)
	for _, s := range profile.Skills {
		reasons = f.appendReason(reasons, "Skill", s)
	}
	if len(reasons) == 0 {
		return false, ""
	}
	return true, strings.Join(reasons, "; ")
}

func (f *contentFilter) appendReason(reasons []string, label, text string) []string {
	if flag, reason := f.ModerateText(text); flag {
		return append(reasons, label+": "+reason)
	}
	return reasons
}
