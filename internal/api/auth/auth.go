package auth

import (
	"net/http"
	"slot_engine/internal/api"
	dto "slot_engine/internal/api/dto/auth"
	"slot_engine/internal/converter"
	"slot_engine/internal/model"
	"slot_engine/internal/service"
	"slot_engine/pkg/req"
	"slot_engine/pkg/resp"
	"time"

	"go.uber.org/zap"
)

const (
	sessionIDCookie    = "session_id"
	refreshTokenCookie = "refresh_token"
	refreshCookiePath  = "/auth"

	defaultCookieTTL = 30 * 24 * time.Hour
)

type HandlerDeps struct {
	Serv service.AuthService
	Log  *zap.Logger
	// CookieTTL время жизни cookies, обычно совпадает с refresh токеном
	CookieTTL time.Duration
	// Secure выставлять cookies только для https
	Secure bool
}

type Handler struct {
	serv      service.AuthService
	log       *zap.Logger
	cookieTTL time.Duration
	secure    bool
}

func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		serv:      deps.Serv,
		log:       deps.Log,
		cookieTTL: deps.CookieTTL,
		secure:    deps.Secure,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.cookieTTL <= 0 {
		h.cookieTTL = defaultCookieTTL
	}
	return h
}

// Register создаёт пользователя, открывает сессию
// и возвращает access_token, а session_id и refresh_token через cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	data, err := h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	h.writeSession(w, http.StatusCreated, data)
}

// Login открывает новую сессию
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Login, requestBody.Password)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	h.writeSession(w, http.StatusOK, data)
}

// Refresh ротирует сессию по паре session_id и refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}
	refreshToken, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no refresh_token cookie")
		return
	}

	data, err := h.serv.Refresh(r.Context(), sessionID.Value, refreshToken.Value)
	if err != nil {
		h.clearSession(w)
		api.WriteError(w, h.log, err)
		return
	}

	h.writeSession(w, http.StatusOK, data)
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}

	if err := h.serv.Logout(r.Context(), c.Value); err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	h.clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, data *model.AuthData) {
	maxAge := int(h.cookieTTL / time.Second)
	h.setCookie(w, sessionIDCookie, data.SessionID, "/", maxAge)
	h.setCookie(w, refreshTokenCookie, data.RefreshToken, refreshCookiePath, maxAge)

	resp.WriteJSONResponse(w, status, dto.TokenResponse{AccessToken: data.AccessToken})
}

func (h *Handler) clearSession(w http.ResponseWriter) {
	h.setCookie(w, sessionIDCookie, "", "/", -1)
	h.setCookie(w, refreshTokenCookie, "", refreshCookiePath, -1)
}

// setCookie удаление cookie делается тем же Path, с которым она ставилась
func (h *Handler) setCookie(w http.ResponseWriter, name, value, path string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
