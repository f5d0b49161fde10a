// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки пар access/refresh токенов.
// MakerImpl — конкретная реализация с секретным ключом и раздельными TTL.
package jwt

import (
	"time"
)

// Identity — данные пользователя, зашиваемые в claims токена.
type Identity struct {
	Email    string
	Username string
	Role     string
	UserID   string
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken выпускает короткоживущий access токен.
	GenerateAccessToken(user Identity) (string, error)
	// GenerateRefreshToken выпускает долгоживущий refresh токен.
	GenerateRefreshToken(user Identity) (string, error)
	// ParseToken возвращает *CustomClaims, если токен подписан нами и не истёк.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и раздельных времён жизни access и refresh токенов.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	accessTTL  time.Duration // Время жизни access токена.
	refreshTTL time.Duration // Время жизни refresh токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
