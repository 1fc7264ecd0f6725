package auth

import (
	"net/http"
	"net/http/httptest"
	dto "slot_engine/internal/api/dto/auth"
	"slot_engine/internal/repository/memory"
	authService "slot_engine/internal/service/auth"
	"slot_engine/pkg/token"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
)

type jwtCfg struct{}

func (jwtCfg) AccessTokenSecretKey() []byte         { return []byte("secret") }
func (jwtCfg) AccessTokenDuration() time.Duration  { return time.Minute }
func (jwtCfg) RefreshTokenDuration() time.Duration { return time.Hour }

func newHandler() *Handler {
	serv := authService.NewService(memory.TxManager{}, memory.NewUsers(), memory.NewSessions(), jwtCfg{})
	return NewHandler(HandlerDeps{Serv: serv, CookieTTL: time.Hour})
}

func do(h http.HandlerFunc, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterSetsSession(t *testing.T) {
	h := newHandler()

	rec := do(h.Register, `{"name":"P","login":"p1","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body)
	}
	var body dto.TokenResponse
	if err := jsoniter.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if _, err := token.UserID(body.AccessToken, []byte("secret")); err != nil {
		t.Errorf("access token: %v", err)
	}

	sid, refresh := cookie(rec, sessionIDCookie), cookie(rec, refreshTokenCookie)
	if sid == nil || refresh == nil {
		t.Fatalf("cookies not set: %v", rec.Result().Cookies())
	}
	if !refresh.HttpOnly || refresh.Path != refreshCookiePath || refresh.MaxAge != 3600 {
		t.Errorf("refresh cookie = %+v", refresh)
	}

	if rec := do(h.Register, `{"login":"p1","password":"x"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register code = %d", rec.Code)
	}
}

func TestLoginRefreshLogout(t *testing.T) {
	h := newHandler()
	do(h.Register, `{"login":"p1","password":"pw"}`)

	if rec := do(h.Login, `{"login":"p1","password":"bad"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password code = %d", rec.Code)
	}
	if rec := do(h.Login, `{"login":`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed login code = %d", rec.Code)
	}

	login := do(h.Login, `{"login":"p1","password":"pw"}`)
	if login.Code != http.StatusOK {
		t.Fatalf("login code = %d", login.Code)
	}
	sid, refresh := cookie(login, sessionIDCookie), cookie(login, refreshTokenCookie)

	rotated := do(h.Refresh, "", sid, refresh)
	if rotated.Code != http.StatusOK {
		t.Fatalf("refresh code = %d body = %s", rotated.Code, rotated.Body)
	}
	newSID := cookie(rotated, sessionIDCookie)
	if newSID == nil || newSID.Value == sid.Value {
		t.Errorf("session not rotated")
	}

	// старая пара больше не принимается
	if rec := do(h.Refresh, "", sid, refresh); rec.Code != http.StatusUnauthorized {
		t.Errorf("reused refresh code = %d", rec.Code)
	}
	if rec := do(h.Refresh, "", newSID); rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh without token code = %d", rec.Code)
	}

	out := do(h.Logout, "", newSID)
	if out.Code != http.StatusNoContent {
		t.Fatalf("logout code = %d", out.Code)
	}
	if c := cookie(out, sessionIDCookie); c == nil || c.MaxAge >= 0 {
		t.Errorf("session cookie not cleared: %+v", c)
	}
	if rec := do(h.Logout, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("logout without cookie code = %d", rec.Code)
	}
}
