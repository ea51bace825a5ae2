package runtime

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Handler runs one job type. Run reports progress through the Context and
// returns an error to have the run retried.
type Handler interface {
	Type() string
	Run(jc *Context) error
}

var (
	ErrNilHandler    = errors.New("job handler is nil")
	ErrEmptyJobType  = errors.New("job handler has an empty type")
	ErrDuplicateType = errors.New("job type already registered")
)

// Registry maps job_type to its Handler. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{byType: map[string]Handler{}}
}

func (r *Registry) Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	jobType := h.Type()
	if jobType == "" {
		return ErrEmptyJobType
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byType[jobType]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateType, jobType)
	}
	r.byType[jobType] = h
	return nil
}

func (r *Registry) Get(jobType string) (Handler, bool) {
	r.mu.RLock()
	h, ok := r.byType[jobType]
	r.mu.RUnlock()
	return h, ok
}

// Types lists registered job types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	types := make([]string, 0, len(r.byType))
	for jobType := range r.byType {
		types = append(types, jobType)
	}
	r.mu.RUnlock()
	sort.Strings(types)
	return types
}
