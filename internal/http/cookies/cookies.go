// Package cookies отвечает за установку и сброс аутентификационных
// cookie. Access токен всегда кладётся в cookie сессии, refresh токен —
// только при включенном флаге remember_me и с ограниченным путём.
package cookies

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
)

// RefreshPath — путь, на который ограничен refresh cookie.
const RefreshPath = "/api/v1/refresh-token"

// SetAccess устанавливает http-only cookie с access токеном.
func SetAccess(w http.ResponseWriter, cfg config.AuthCookies, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.AccessCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSite(cfg.SameSite),
	})
}

// SetRefresh устанавливает http-only cookie с refresh токеном,
// доступный только на маршруте обновления токена.
func SetRefresh(w http.ResponseWriter, cfg config.AuthCookies, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.RefreshCookieName,
		Value:    token,
		Path:     RefreshPath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSite(cfg.SameSite),
	})
}

// Clear сбрасывает обе аутентификационные cookie.
func Clear(w http.ResponseWriter, cfg config.AuthCookies) {
	for name, path := range map[string]string{
		cfg.AccessCookieName:  "/",
		cfg.RefreshCookieName: RefreshPath,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: sameSite(cfg.SameSite),
		})
	}
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
