package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
)

func TestAsUnwrapsWrappedError(t *testing.T) {
	base := NotFound("match_not_found", "Match not found")
	wrapped := fmt.Errorf("load: %w", base)

	got := As(wrapped)
	if got.Status != http.StatusNotFound || got.Code != "match_not_found" {
		t.Fatalf("unexpected error: %+v", got)
	}
	if got.Error() != "Match not found" {
		t.Fatalf("message = %q", got.Error())
	}
}

func TestAsDefaultsToInternal(t *testing.T) {
	got := As(errors.New("boom"))
	if got.Status != http.StatusInternalServerError || got.Code != "internal_error" {
		t.Fatalf("unexpected error: %+v", got)
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should be nil")
	}
}

func TestDetailKeepsCauseMatchable(t *testing.T) {
	sentinel := errors.New("duplicate")
	err := Detail(http.StatusBadRequest, "duplicate_interaction", "You have already liked this profile recently", sentinel)
	if err.Error() != "You have already liked this profile recently" {
		t.Fatalf("message = %q", err.Error())
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("sentinel not reachable through Detail")
	}
}

func TestStatusHelpersWrapSentinels(t *testing.T) {
	cases := []struct {
		err      *Error
		status   int
		sentinel error
	}{
		{BadRequest("invalid_role", "Role must be one of designer, hirer, admin"), http.StatusBadRequest, pkgerrors.ErrInvalidArgument},
		{Unauthorized("unauthorized", "Not authenticated"), http.StatusUnauthorized, pkgerrors.ErrUnauthorized},
		{NotFound("match_not_found", "Match not found"), http.StatusNotFound, pkgerrors.ErrNotFound},
		{Forbidden("Admin access required"), http.StatusForbidden, pkgerrors.ErrForbidden},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status {
			t.Fatalf("%s: status=%d want %d", tc.err.Code, tc.err.Status, tc.status)
		}
		if !errors.Is(fmt.Errorf("handler: %w", tc.err), tc.sentinel) {
			t.Fatalf("%s: %v not reachable with errors.Is", tc.err.Code, tc.sentinel)
		}
	}
	if got := Forbidden("Admin access required").Error(); got != "Admin access required" {
		t.Fatalf("client message changed: %q", got)
	}
}
