package http

import (
	"net/http"
	"time"
)

// SessionCookieName es el nombre fijo de la cookie que transporta el token de sesion.
const SessionCookieName = "auth_token"

// SessionCookie emite, borra y lee la cookie de sesion. Attach y Detach comparten
// los mismos atributos para que el navegador reconozca la cookie al borrarla.
type SessionCookie struct {
	secure bool
	maxAge time.Duration
}

// NewSessionCookie crea el adaptador. maxAge debe coincidir con la vida del token.
func NewSessionCookie(secure bool, maxAge time.Duration) SessionCookie {
	return SessionCookie{secure: secure, maxAge: maxAge}
}

func (s SessionCookie) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, int(s.maxAge.Seconds())))
}

func (s SessionCookie) Detach(w http.ResponseWriter) {
	c := s.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// Extract devuelve el token si la cookie existe y no esta vacia. Su ausencia es el estado anonimo.
func (s SessionCookie) Extract(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	}
}
