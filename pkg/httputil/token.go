package httputil

import (
	"errors"
	"net/http"
	"strings"
)

const GameCookieName = "game_token"

// SetGameCookie keeps the game token in the browser so a page reload can
// reattach to the same game.
func SetGameCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	cookie := &http.Cookie{
		Name:     GameCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

// GetTokenFromRequest looks in the Authorization header, then the token
// query parameter (browsers cannot set headers on a WebSocket upgrade),
// then the cookie.
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	cookie, err := r.Cookie(GameCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errors.New("no game token in header, query or cookie")
}
