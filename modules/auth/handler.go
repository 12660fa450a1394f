package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/listora/identity/pkg/logger"
)

// maxImageBytes bounds profile-image uploads.
const maxImageBytes = 5 << 20

// Generic acknowledgements for the anti-enumeration flows. These strings
// must stay identical regardless of whether the account exists.
const (
	otpRequestedMessage   = "If the email address is valid, a login code has been sent."
	resetRequestedMessage = "If an account exists for that email, a reset link has been sent."
)

// Handler exposes the credential flows over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler wraps svc. log may be nil.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, logger: log}
}

// Handle returns the router for mounting under /auth.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/signup", h.signup)
	r.Get("/verify-email", h.verifyEmail)
	r.Post("/login", h.login)
	r.Post("/google", h.googleLogin)
	r.Post("/request-otp", h.requestOTP)
	r.Post("/verify-otp", h.verifyOTP)
	r.Post("/forgot-password", h.forgotPassword)
	r.Get("/verify-reset-token", h.verifyResetToken)
	r.Post("/reset-password", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.svc.Authenticate)
		r.Get("/me", h.me)
		r.Post("/change-password", h.changePassword)
		r.Post("/profile-image", h.profileImage)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/admin/invite", h.inviteAdmin)
		})
	})

	return r
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if !h.decode(w, r, &in) {
		return
	}

	user, err := h.svc.Signup(r.Context(), in)
	if err != nil {
		h.reportError(w, r, "signup", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.VerifyEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
		h.reportError(w, r, "verify email", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Email verified. You can now log in."})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.reportError(w, r, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	var in GoogleLoginInput
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.GoogleLogin(r.Context(), in)
	if err != nil {
		h.reportError(w, r, "google login", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.svc.RequestOTP(r.Context(), in.Email); err != nil {
		h.reportError(w, r, "request otp", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: otpRequestedMessage})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.VerifyOTP(r.Context(), in.Email, in.Code)
	if err != nil {
		h.reportError(w, r, "verify otp", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), in.Email); err != nil {
		h.reportError(w, r, "forgot password", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: resetRequestedMessage})
}

func (h *Handler) verifyResetToken(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.VerifyResetToken(r.Context(), r.URL.Query().Get("token")); err != nil {
		h.reportError(w, r, "verify reset token", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Token is valid."})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !h.decode(w, r, &in) {
		return
	}

	result, err := h.svc.ResetPassword(r.Context(), in.Token, in.Password)
	if err != nil {
		h.reportError(w, r, "reset password", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), p.ID)
	if err != nil {
		h.reportError(w, r, "current user", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
		return
	}

	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.svc.ChangePassword(r.Context(), p.ID, in.CurrentPassword, in.NewPassword); err != nil {
		h.reportError(w, r, "change password", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated."})
}

func (h *Handler) profileImage(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "image too large or unreadable", nil)
		return
	}

	user, err := h.svc.UpdateProfileImage(r.Context(), p.ID, data)
	if err != nil {
		h.reportError(w, r, "profile image", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) inviteAdmin(w http.ResponseWriter, r *http.Request) {
	var in InviteAdminInput
	if !h.decode(w, r, &in) {
		return
	}

	user, err := h.svc.InviteAdmin(r.Context(), in)
	if err != nil {
		h.reportError(w, r, "invite admin", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", nil)
		return false
	}
	return true
}

// reportError writes the mapped response and logs only the unexpected ones.
func (h *Handler) reportError(w http.ResponseWriter, r *http.Request, flow string, err error) {
	if expected := writeFlowError(w, err); !expected {
		h.logger.ErrorContext(r.Context(), "flow failed",
			slog.String("flow", flow),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}
