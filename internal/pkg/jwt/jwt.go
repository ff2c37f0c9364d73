package jwt

import (
	"time"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Клиент токены не выпускает и не проверяет подпись - этим занимается
// backend. Здесь токен только разбирается, чтобы не делать заведомо
// обречённый запрос с протухшим токеном после рестарта.

// Claims - интересующая клиента часть payload'а токена
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect разбирает токен без проверки подписи и возвращает claims.
// Отсутствие exp считается ошибкой: такой токен не из нашей системы.
func Inspect(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, domain.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	return &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Expired сообщает, истёк ли токен к моменту now.
// Нечитаемый токен считается истёкшим - хранить его смысла нет.
func Expired(tokenString string, now time.Time) bool {
	claims, err := Inspect(tokenString)
	if err != nil {
		return true
	}
	return claims.ExpiresAt.Before(now)
}
