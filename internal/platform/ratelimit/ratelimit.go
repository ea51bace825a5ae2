package ratelimit

import (
	"context"
	"time"
)

// Rule is a sliding-window limit: at most Limit hits per Window.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

var (
	Auth  = Rule{Name: "auth", Limit: 5, Window: 300 * time.Second}
	Swipe = Rule{Name: "swipe", Limit: 100, Window: 60 * time.Second}
	API   = Rule{Name: "api", Limit: 1000, Window: 3600 * time.Second}
)

type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter records a hit for key under rule. Rejected hits are not counted.
type Limiter interface {
	Allow(ctx context.Context, rule Rule, key string) (Decision, error)
}

func Key(rule Rule, subject string) string {
	return "ratelimit:" + rule.Name + ":" + subject
}
