package middlewarectx

import (
	"net/http"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
)

// RateLimiter ограничивает частоту запросов по имени пользователя
// из контекста, для анонимных запросов используется адрес клиента.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimiter создает новый RateLimiter с указанной частотой
// запросов в секунду и размером всплеска.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	lim, ok := rl.visitors[key]
	if !ok {
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[key] = lim
	}
	return lim
}

// Middleware возвращает HTTP middleware, которое отклоняет запросы,
// превышающие лимит, с кодом 429 Too Many Requests.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if username, ok := r.Context().Value(User).(string); ok && username != "" {
			key = username
		}
		if !rl.limiter(key).Allow() {
			status, resp := response.Fail(apperr.RateLimited())
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}
		next.ServeHTTP(w, r)
	})
}
