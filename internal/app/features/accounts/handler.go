// internal/app/features/accounts/handler.go
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/meethub/internal/app/features/shared/respond"
	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/auth"
	"github.com/dalemusser/meethub/internal/app/system/mailer"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// Handler serves account signup, login and password reset.
type Handler struct {
	Users   *userstore.Store
	Tokens  *auth.TokenService
	Mail    mailer.Sender
	BaseURL string
	Log     *zap.Logger
}

// NewHandler constructs an accounts Handler.
func NewHandler(users *userstore.Store, tokens *auth.TokenService, mail mailer.Sender, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   users,
		Tokens:  tokens,
		Mail:    mail,
		BaseURL: baseURL,
		Log:     logger,
	}
}

type signupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// sessionResponse is returned by signup and login: the bearer token plus the
// public shape of the account.
type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup handles POST /api/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.UserName == "" || req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "userName, email and password are required")
		return
	}
	if len(req.Password) < 8 {
		respond.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	u, err := h.Users.Create(r.Context(), userstore.NewUserParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		UserName:    req.UserName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	h.sendAsync(mailer.BuildWelcomeEmail(u.Email, u.FirstName))
	h.Log.Info("account created",
		zap.String("user_id", u.UserID),
		zap.Bool("is_admin", u.IsAdmin))
	respond.JSON(w, http.StatusCreated, sessionResponse{Token: token, User: u})
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	u, err := h.Users.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	h.Log.Info("login", zap.String("user_id", u.UserID))
	respond.JSON(w, http.StatusOK, sessionResponse{Token: token, User: u})
}

// ForgotPassword handles POST /api/forgot-password. The response is the same
// whether or not the email names an account, so the endpoint cannot be used
// to probe for registered addresses.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respond.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	u, token, err := h.Users.IssueResetToken(r.Context(), req.Email)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		// Fall through to the generic response.
	case err != nil:
		respond.StoreError(w, h.Log, err)
		return
	default:
		h.sendAsync(mailer.BuildResetEmail(u.Email, h.BaseURL, token))
	}

	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "If that email is registered, a reset link has been sent",
	})
}

// ResetPassword handles POST /api/reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if len(req.Password) < 8 {
		respond.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	if err := h.Users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// Me handles GET /api/me, returning the account behind the bearer token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	u, err := h.Users.FindByUserID(r.Context(), su.UserID)
	if err != nil {
		respond.StoreError(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// sendAsync delivers an email off the request path. Account flows never fail
// because SMTP is down.
func (h *Handler) sendAsync(e mailer.Email) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.Mail.Send(ctx, e); err != nil {
			h.Log.Error("account email failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
		}
	}()
}
