package service

import (
	"sync"

	"github.com/chartflow/portal/internal/core/domain"
)

// Decision is what the guard wants the caller to do with a protected page.
type Decision string

const (
	DecisionPlaceholder Decision = "placeholder"
	DecisionRedirect    Decision = "redirect"
	DecisionRender      Decision = "render"
)

// RouteGuard keeps anonymous clients out of protected pages.
//
// It redirects at most once per resolution: after the first redirect it
// answers placeholder until the session goes back to loading.
type RouteGuard struct {
	mu         sync.Mutex
	resolved   bool
	redirected bool
}

func NewRouteGuard() *RouteGuard {
	return &RouteGuard{}
}

// Observe feeds the guard the current session state and returns its decision.
func (g *RouteGuard) Observe(loading bool, user *domain.User) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if loading {
		g.resolved = false
		g.redirected = false
		return DecisionPlaceholder
	}
	g.resolved = true

	if user != nil {
		g.redirected = false
		return DecisionRender
	}
	if g.redirected {
		return DecisionPlaceholder
	}
	g.redirected = true
	return DecisionRedirect
}

// Resolved reports whether the last observation had a settled session.
func (g *RouteGuard) Resolved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolved
}
