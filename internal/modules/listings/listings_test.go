package listings

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/services"
)

func newTestUsecases(t *testing.T) (Usecases, *gorm.DB, repos.ListingRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	filter, err := services.NewContentFilter(log, "")
	if err != nil {
		t.Fatalf("NewContentFilter: %v", err)
	}
	listingRepo := repos.NewListingRepo(db, log)
	return New(UsecasesDeps{Log: log, Listings: listingRepo, Filter: filter}), db, listingRepo
}

func expectAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T (%v)", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d/%s, got %d/%s (%v)", status, code, ae.Status, ae.Code, ae.Err)
	}
}

func strPtr(s string) *string      { return &s }
func f64Ptr(f float64) *float64    { return &f }
func skills(s ...string) *[]string { return &s }

func baseInput() ListingInput {
	return ListingInput{
		Title:          strPtr("Senior Product Designer"),
		Company:        strPtr("Acme"),
		Description:    strPtr("Own the design system."),
		SkillsRequired: skills("Figma", "Prototyping"),
	}
}

func TestCreateRequiresHirer(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	designer := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	hirer := testutil.SeedUser(t, ctx, db, types.RoleHirer)

	_, err := uc.Create(ctx, Actor{UserID: designer.ID, Role: designer.Role}, baseInput())
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")

	l, err := uc.Create(ctx, Actor{UserID: hirer.ID, Role: hirer.Role}, baseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Status != "draft" || !l.IsActive || l.Flagged {
		t.Fatalf("unexpected listing: %+v", l)
	}
}

func TestCreateValidatesSalaryAndFlagsContent(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	hirer := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	actor := Actor{UserID: hirer.ID, Role: hirer.Role}

	in := baseInput()
	in.SalaryMin = f64Ptr(120000)
	in.SalaryMax = f64Ptr(90000)
	_, err := uc.Create(ctx, actor, in)
	expectAPIErr(t, err, http.StatusBadRequest, "invalid_salary_range")

	in = baseInput()
	in.Title = strPtr("Limited time offer")
	l, err := uc.Create(ctx, actor, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !l.Flagged || l.FlagReason != "Title: Spam patterns detected" {
		t.Fatalf("expected title flag, got flagged=%v reason=%q", l.Flagged, l.FlagReason)
	}
}

func TestSearchFilters(t *testing.T) {
	uc, db, listingRepo := newTestUsecases(t)
	ctx := context.Background()
	hirer := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	actor := Actor{UserID: hirer.ID, Role: hirer.Role}
	active := "active"

	mk := func(title, location, remote string, min, max, hourly *float64, sk ...string) *types.Listing {
		in := baseInput()
		in.Title = strPtr(title)
		in.Location = strPtr(location)
		in.RemotePreference = strPtr(remote)
		in.SalaryMin, in.SalaryMax, in.HourlyRate = min, max, hourly
		in.SkillsRequired = skills(sk...)
		in.Status = &active
		l, err := uc.Create(ctx, actor, in)
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		time.Sleep(2 * time.Millisecond)
		return l
	}
	berlin := mk("Berlin role", "Berlin, DE", "hybrid", f64Ptr(60000), f64Ptr(80000), nil, "Figma")
	remote := mk("Remote role", "Anywhere", "remote", nil, nil, f64Ptr(50), "Illustrator")
	boosted := mk("Boosted role", "Berlin", "onsite", f64Ptr(90000), f64Ptr(120000), nil, "figma", "Motion")
	draft := baseInput()
	if _, err := uc.Create(ctx, actor, draft); err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if err := listingRepo.UpdateFields(dbctx.Context{Ctx: ctx}, boosted.ID, map[string]interface{}{"is_boosted": true}); err != nil {
		t.Fatalf("boost: %v", err)
	}

	all, err := uc.Search(ctx, SearchInput{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(all) != 3 || all[0].ID != boosted.ID || all[1].ID != remote.ID {
		t.Fatalf("expected boosted first then newest, got %d cards", len(all))
	}

	byLoc, err := uc.Search(ctx, SearchInput{Location: "berlin"})
	if err != nil || len(byLoc) != 2 {
		t.Fatalf("location filter: rows=%d err=%v", len(byLoc), err)
	}
	bySkill, err := uc.Search(ctx, SearchInput{Skills: []string{"FIGMA"}})
	if err != nil || len(bySkill) != 2 {
		t.Fatalf("skill filter: rows=%d err=%v", len(bySkill), err)
	}
	byRemote, err := uc.Search(ctx, SearchInput{RemotePreference: "remote"})
	if err != nil || len(byRemote) != 1 || byRemote[0].ID != remote.ID {
		t.Fatalf("remote filter: rows=%d err=%v", len(byRemote), err)
	}
	// 50/h * 2000 = 100000 annual.
	rich, err := uc.Search(ctx, SearchInput{MinSalary: f64Ptr(95000)})
	if err != nil || len(rich) != 2 {
		t.Fatalf("min salary filter: rows=%d err=%v", len(rich), err)
	}
	cheap, err := uc.Search(ctx, SearchInput{MaxSalary: f64Ptr(70000)})
	if err != nil || len(cheap) != 1 || cheap[0].ID != berlin.ID {
		t.Fatalf("max salary filter: rows=%d err=%v", len(cheap), err)
	}
	drafts, err := uc.Search(ctx, SearchInput{Status: "draft"})
	if err != nil || len(drafts) != 1 {
		t.Fatalf("status filter: rows=%d err=%v", len(drafts), err)
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	hirer := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	actor := Actor{UserID: hirer.ID, Role: hirer.Role}
	active := "active"

	mk := func(title, location string, sk ...string) *types.Listing {
		in := baseInput()
		in.Title = strPtr(title)
		in.Location = strPtr(location)
		in.SkillsRequired = skills(sk...)
		in.Status = &active
		l, err := uc.Create(ctx, actor, in)
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		return l
	}
	percent := mk("Percent", "100% remote", "UI_UX")
	mk("Digits", "1000 remote", "UIxUX")

	byLoc, err := uc.Search(ctx, SearchInput{Location: "100%"})
	if err != nil || len(byLoc) != 1 || byLoc[0].ID != percent.ID {
		t.Fatalf("%% must match literally: rows=%d err=%v", len(byLoc), err)
	}
	bySkill, err := uc.Search(ctx, SearchInput{Skills: []string{"ui_ux"}})
	if err != nil || len(bySkill) != 1 || bySkill[0].ID != percent.ID {
		t.Fatalf("_ must match literally: rows=%d err=%v", len(bySkill), err)
	}
	if none, err := uc.Search(ctx, SearchInput{Location: "%"}); err != nil || len(none) != 1 {
		t.Fatalf("bare %% should only match a literal percent: rows=%d err=%v", len(none), err)
	}
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	other := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	admin := testutil.SeedUser(t, ctx, db, types.RoleAdmin)
	ownerActor := Actor{UserID: owner.ID, Role: owner.Role}

	l, err := uc.Create(ctx, ownerActor, baseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = uc.Update(ctx, Actor{UserID: other.ID, Role: other.Role}, l.ID, ListingInput{Title: strPtr("Mine now")})
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")

	_, err = uc.Update(ctx, ownerActor, l.ID, ListingInput{SalaryMin: f64Ptr(10), SalaryMax: f64Ptr(5)})
	expectAPIErr(t, err, http.StatusBadRequest, "invalid_salary_range")

	updated, err := uc.Update(ctx, Actor{UserID: admin.ID, Role: admin.Role}, l.ID, ListingInput{Title: strPtr("Lead Designer")})
	if err != nil {
		t.Fatalf("admin Update: %v", err)
	}
	if updated.Title != "Lead Designer" || updated.Company != "Acme" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	_, err = uc.Delete(ctx, Actor{UserID: other.ID, Role: other.Role}, l.ID)
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	if _, err := uc.Delete(ctx, ownerActor, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = uc.Get(ctx, l.ID)
	expectAPIErr(t, err, http.StatusNotFound, "listing_not_found")
	_, err = uc.Delete(ctx, ownerActor, uuid.New())
	expectAPIErr(t, err, http.StatusNotFound, "listing_not_found")
}
