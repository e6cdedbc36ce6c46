// internal/app/features/meetings/handler_test.go
package meetings_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/meethub/internal/app/features/meetings"
	meetingstore "github.com/dalemusser/meethub/internal/app/store/meetings"
	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/notify"
	"github.com/dalemusser/meethub/internal/domain/models"
	"github.com/dalemusser/meethub/internal/testutil"
	"github.com/go-chi/chi/v5"
)

type nopPublisher struct{}

func (nopPublisher) Publish(notify.Event) {}

type fixture struct {
	router chi.Router
	store  *meetingstore.Store
	owner  models.User
	admin  models.User
	start  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	store := meetingstore.New(db, users, nopPublisher{})
	h := meetings.NewHandler(store, users, zap.NewNop())

	fx := testutil.NewFixtures(db)
	owner := fx.CreateUser(t, ctx, "ada", "ada@example.com", "pw")
	admin := fx.CreateAdmin(t, ctx, "admin@example.com", "pw")

	return &fixture{
		router: meetings.Routes(h),
		store:  store,
		owner:  owner,
		admin:  admin,
		start:  time.Date(time.Now().Year()+1, time.June, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	return rec
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	body := map[string]any{
		"userId":      f.owner.UserID,
		"title":       "Budget review",
		"description": "numbers",
		"location":    "Room 4",
		"start":       f.start,
		"end":         f.start.Add(time.Hour),
		"importance":  0,
	}
	req := testutil.AsUser(testutil.JSONRequest(t, "POST", "/meetings", body), f.admin)
	rec := f.do(req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201: %s", rec.Code, rec.Body.String())
	}

	payload := rec.Body.Bytes()

	var view models.MeetingView
	if err := json.Unmarshal(payload, &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.ID == "" {
		t.Error("expected meeting id in response")
	}
	if view.Color.Primary != "#ad2121" {
		t.Errorf("color: got %q", view.Color.Primary)
	}
	if view.CreatedByName != f.admin.FullName() {
		t.Errorf("adminName: got %q, want %q", view.CreatedByName, f.admin.FullName())
	}

	// The API response must not expose the owner identifiers.
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("reparse body: %v", err)
	}
	for _, secret := range []string{"userId", "userEmail"} {
		if _, ok := raw[secret]; ok {
			t.Errorf("response leaks %q", secret)
		}
	}
}

func TestCreateAuthz(t *testing.T) {
	f := newFixture(t)

	body := map[string]any{"userId": f.owner.UserID, "title": "t",
		"start": f.start, "end": f.start.Add(time.Hour)}

	// Anonymous gets 401.
	if rec := f.do(testutil.JSONRequest(t, "POST", "/meetings", body)); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want 401", rec.Code)
	}
	// Regular user gets 403.
	req := testutil.AsUser(testutil.JSONRequest(t, "POST", "/meetings", body), f.owner)
	if rec := f.do(req); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin: got %d, want 403", rec.Code)
	}
}

func TestCreateValidationErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing owner", map[string]any{"title": "t", "start": f.start, "end": f.start.Add(time.Hour)}, 400},
		{"unknown owner", map[string]any{"userId": "ghost", "title": "t", "start": f.start, "end": f.start.Add(time.Hour)}, 404},
		{"admin owner", map[string]any{"userId": f.admin.UserID, "title": "t", "start": f.start, "end": f.start.Add(time.Hour)}, 403},
		{"start after end", map[string]any{"userId": f.owner.UserID, "title": "t", "start": f.start.Add(time.Hour), "end": f.start}, 400},
		{"bad importance", map[string]any{"userId": f.owner.UserID, "title": "t", "start": f.start, "end": f.start.Add(time.Hour), "importance": 7}, 400},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.AsUser(testutil.JSONRequest(t, "POST", "/meetings", tc.body), f.admin)
			if rec := f.do(req); rec.Code != tc.want {
				t.Errorf("got %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := f.store.Create(ctx, "Admin", meetingstore.NewMeetingParams{
		OwnerUserID: f.owner.UserID,
		Title:       "Original",
		Start:       f.start,
		End:         f.start.Add(time.Hour),
		Importance:  models.ImportanceLow,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	req := testutil.AsUser(testutil.JSONRequest(t, "PUT", "/meetings/"+m.MeetingID,
		map[string]any{"title": "Renamed"}), f.admin)
	rec := f.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	var view models.MeetingView
	testutil.DecodeJSON(t, rec, &view)
	if view.Title != "Renamed" {
		t.Errorf("title: got %q", view.Title)
	}

	// Re-submitting the same value is a no-op and a client error.
	req = testutil.AsUser(testutil.JSONRequest(t, "PUT", "/meetings/"+m.MeetingID,
		map[string]any{"title": "Renamed"}), f.admin)
	rec = f.do(req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no-op edit: got %d, want 400", rec.Code)
	}
	var errBody map[string]string
	testutil.DecodeJSON(t, rec, &errBody)
	if errBody["error"] != "there are no changes to save" {
		t.Errorf("no-op message: got %q", errBody["error"])
	}
}

func TestEditUnknownMeeting(t *testing.T) {
	f := newFixture(t)

	req := testutil.AsUser(testutil.JSONRequest(t, "PUT", "/meetings/ghost",
		map[string]any{"title": "x"}), f.admin)
	if rec := f.do(req); rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := f.store.Create(ctx, "Admin", meetingstore.NewMeetingParams{
		OwnerUserID: f.owner.UserID,
		Title:       "Doomed",
		Start:       f.start,
		End:         f.start.Add(time.Hour),
		Importance:  models.ImportanceLow,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	req := testutil.AsUser(testutil.JSONRequest(t, "DELETE", "/meetings/"+m.MeetingID, nil), f.admin)
	if rec := f.do(req); rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rec.Code)
	}

	req = testutil.AsUser(testutil.JSONRequest(t, "DELETE", "/meetings/"+m.MeetingID, nil), f.admin)
	if rec := f.do(req); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := f.store.Create(ctx, "Admin", meetingstore.NewMeetingParams{
		OwnerUserID: f.owner.UserID,
		Title:       "June meeting",
		Start:       f.start,
		End:         f.start.Add(time.Hour),
		Importance:  models.ImportanceLow,
	}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	target := fmt.Sprintf("/meetings?month=5&year=%d", f.start.Year())
	req := testutil.AsUser(testutil.JSONRequest(t, "GET", target, nil), f.owner)
	rec := f.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}

	var views []models.MeetingView
	testutil.DecodeJSON(t, rec, &views)
	if len(views) != 1 || views[0].Title != "June meeting" {
		t.Errorf("expected the June meeting, got %d results", len(views))
	}

	// Wrong month is empty, not an error.
	req = testutil.AsUser(testutil.JSONRequest(t, "GET",
		fmt.Sprintf("/meetings?month=3&year=%d", f.start.Year()), nil), f.owner)
	rec = f.do(req)
	testutil.DecodeJSON(t, rec, &views)
	if len(views) != 0 {
		t.Errorf("wrong month: expected empty list, got %d", len(views))
	}
}

func TestListMineAdminForbidden(t *testing.T) {
	f := newFixture(t)

	req := testutil.AsUser(testutil.JSONRequest(t, "GET", "/meetings?month=5", nil), f.admin)
	if rec := f.do(req); rec.Code != http.StatusForbidden {
		t.Errorf("admin list: got %d, want 403", rec.Code)
	}
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := f.store.Create(ctx, "Admin", meetingstore.NewMeetingParams{
		OwnerUserID: f.owner.UserID,
		Title:       "Visible to admin",
		Start:       f.start,
		End:         f.start.Add(time.Hour),
		Importance:  models.ImportanceLow,
	}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	target := fmt.Sprintf("/users/%s/meetings?month=5&year=%d", f.owner.UserID, f.start.Year())
	req := testutil.AsUser(testutil.JSONRequest(t, "GET", target, nil), f.admin)
	rec := f.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var views []models.MeetingView
	testutil.DecodeJSON(t, rec, &views)
	if len(views) != 1 {
		t.Errorf("expected 1 meeting, got %d", len(views))
	}

	// Regular users cannot browse someone else's calendar.
	req = testutil.AsUser(testutil.JSONRequest(t, "GET", target, nil), f.owner)
	if rec := f.do(req); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin: got %d, want 403", rec.Code)
	}
}

func TestListForUserBadTarget(t *testing.T) {
	f := newFixture(t)

	// The target must exist; an unknown id is not just an empty month.
	target := fmt.Sprintf("/users/ghost/meetings?month=5&year=%d", f.start.Year())
	req := testutil.AsUser(testutil.JSONRequest(t, "GET", target, nil), f.admin)
	if rec := f.do(req); rec.Code != http.StatusNotFound {
		t.Errorf("unknown target: got %d, want 404", rec.Code)
	}

	// Admin accounts own no meetings, so listing one is rejected.
	target = fmt.Sprintf("/users/%s/meetings?month=5&year=%d", f.admin.UserID, f.start.Year())
	req = testutil.AsUser(testutil.JSONRequest(t, "GET", target, nil), f.admin)
	if rec := f.do(req); rec.Code != http.StatusForbidden {
		t.Errorf("admin target: got %d, want 403", rec.Code)
	}
}

func TestListMonthValidation(t *testing.T) {
	f := newFixture(t)

	for _, month := range []string{"", "12", "-1", "abc"} {
		req := testutil.AsUser(testutil.JSONRequest(t, "GET", "/meetings?month="+month, nil), f.owner)
		if rec := f.do(req); rec.Code != http.StatusBadRequest {
			t.Errorf("month=%q: got %d, want 400", month, rec.Code)
		}
	}
}
