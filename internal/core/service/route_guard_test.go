package service

import (
	"testing"

	"github.com/chartflow/portal/internal/core/domain"
)

func TestRouteGuard_PlaceholderWhileLoading(t *testing.T) {
	g := NewRouteGuard()
	for range 3 {
		if got := g.Observe(true, nil); got != DecisionPlaceholder {
			t.Fatalf("expected placeholder while loading, got %s", got)
		}
	}
	if g.Resolved() {
		t.Fatalf("guard should not be resolved while loading")
	}
}

func TestRouteGuard_RendersForSignedInUser(t *testing.T) {
	g := NewRouteGuard()
	u := &domain.User{ID: "u1", Email: "ada@example.com"}

	if got := g.Observe(false, u); got != DecisionRender {
		t.Fatalf("expected render, got %s", got)
	}
	if got := g.Observe(false, u); got != DecisionRender {
		t.Fatalf("expected render on repeat, got %s", got)
	}
}

func TestRouteGuard_RedirectsExactlyOncePerResolution(t *testing.T) {
	g := NewRouteGuard()
	g.Observe(true, nil)

	if got := g.Observe(false, nil); got != DecisionRedirect {
		t.Fatalf("expected redirect, got %s", got)
	}
	for i := range 3 {
		if got := g.Observe(false, nil); got != DecisionPlaceholder {
			t.Fatalf("observation %d: expected placeholder after redirect, got %s", i, got)
		}
	}
}

func TestRouteGuard_LoadingRearmsRedirect(t *testing.T) {
	g := NewRouteGuard()

	if got := g.Observe(false, nil); got != DecisionRedirect {
		t.Fatalf("expected redirect, got %s", got)
	}
	g.Observe(true, nil)
	if got := g.Observe(false, nil); got != DecisionRedirect {
		t.Fatalf("expected a fresh redirect after re-resolving, got %s", got)
	}
}

func TestRouteGuard_SignOutAfterRenderRedirects(t *testing.T) {
	g := NewRouteGuard()
	g.Observe(false, &domain.User{ID: "u1"})

	if got := g.Observe(false, nil); got != DecisionRedirect {
		t.Fatalf("expected redirect once the user is gone, got %s", got)
	}
}
