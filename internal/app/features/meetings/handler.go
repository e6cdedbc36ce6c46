// internal/app/features/meetings/handler.go
package meetings

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/meethub/internal/app/features/shared/respond"
	meetingstore "github.com/dalemusser/meethub/internal/app/store/meetings"
	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/auth"
	"github.com/dalemusser/meethub/internal/app/system/calendar"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// Handler serves the meetings JSON API.
type Handler struct {
	Meetings *meetingstore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a meetings Handler.
func NewHandler(meetings *meetingstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Meetings: meetings, Users: users, Log: logger}
}

// createRequest is the JSON body for creating a meeting. Field names match
// the calendar frontend's payload.
type createRequest struct {
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Importance  int       `json:"importance"`
}

// editRequest is the JSON body for a partial update. Absent fields are left
// untouched.
type editRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Importance  *int       `json:"importance"`
}

// Create handles POST /api/meetings. Admin only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.UserID == "" || req.Title == "" {
		respond.Error(w, http.StatusBadRequest, "userId and title are required")
		return
	}

	m, err := h.Meetings.Create(r.Context(), u.FullName, meetingstore.NewMeetingParams{
		OwnerUserID: req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       req.Start,
		End:         req.End,
		Importance:  req.Importance,
	})
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	h.Log.Info("meeting created",
		zap.String("meeting_id", m.MeetingID),
		zap.String("owner_user_id", m.OwnerUserID),
		zap.String("created_by", u.UserName))
	respond.JSON(w, http.StatusCreated, m.View())
}

// Edit handles PUT /api/meetings/{meetingID}. Admin only.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	meetingID := chi.URLParam(r, "meetingID")

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	m, err := h.Meetings.Edit(r.Context(), meetingID, meetingstore.Patch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       req.Start,
		End:         req.End,
		Importance:  req.Importance,
	})
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	h.Log.Info("meeting updated", zap.String("meeting_id", m.MeetingID))
	respond.JSON(w, http.StatusOK, m.View())
}

// Delete handles DELETE /api/meetings/{meetingID}. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	meetingID := chi.URLParam(r, "meetingID")

	m, err := h.Meetings.Delete(r.Context(), meetingID)
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	h.Log.Info("meeting deleted", zap.String("meeting_id", m.MeetingID))
	respond.JSON(w, http.StatusOK, m.View())
}

// ListMine handles GET /api/meetings?month=&year=. It returns the calling
// user's meetings for the month. Admin accounts own no meetings and get a
// 403 rather than an empty list.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	if u.IsAdmin {
		respond.Error(w, http.StatusForbidden, "admin accounts have no meeting list")
		return
	}
	h.list(w, r, u.UserID)
}

// ListForUser handles GET /api/users/{userID}/meetings?month=&year=.
// Admin only; this is how the scheduling UI shows another user's month.
// The target must be an existing non-admin account.
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	target, err := h.Users.FindByUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}
	if target.IsAdmin {
		respond.Error(w, http.StatusForbidden, "admin accounts have no meeting list")
		return
	}
	h.list(w, r, target.UserID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, ownerUserID string) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || !calendar.ValidMonth(month) {
		respond.Error(w, http.StatusBadRequest, "month must be an integer between 0 and 11")
		return
	}

	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "year must be an integer")
			return
		}
	}

	list, err := h.Meetings.ListByMonth(r.Context(), ownerUserID, month, year)
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	views := make([]models.MeetingView, 0, len(list))
	for _, m := range list {
		views = append(views, m.View())
	}
	respond.JSON(w, http.StatusOK, views)
}
