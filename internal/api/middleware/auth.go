package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const (
	// HeaderUserID и HeaderUserRole проставляет API gateway
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingCredentials = "требуется авторизация"
	msgInvalidToken       = "некорректный токен"
)

var errInvalidClaims = errors.New("invalid token claims")

type actorKey struct{}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor извлекает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// Auth определяет пользователя по Bearer JWT (HS256, claims sub и role).
// Если trustHeaders включен и токена нет, берёт пользователя из заголовков gateway.
func Auth(secret string, trustHeaders bool, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				actor domain.Actor
				err   error
			)

			header := r.Header.Get("Authorization")
			switch {
			case strings.HasPrefix(header, "Bearer ") && secret != "":
				actor, err = parseToken(strings.TrimPrefix(header, "Bearer "), secret)
			case trustHeaders && r.Header.Get(HeaderUserID) != "":
				actor, err = parseHeaders(r.Header.Get(HeaderUserID), r.Header.Get(HeaderUserRole))
			default:
				logger.Warn("%s %s - Missing credentials", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingCredentials)
				return
			}

			if err != nil {
				logger.Warn("%s %s - Invalid credentials: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func parseToken(raw, secret string) (domain.Actor, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Actor{}, errInvalidClaims
	}

	var userID int64
	switch sub := claims["sub"].(type) {
	case string:
		userID, err = strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return domain.Actor{}, fmt.Errorf("%w: sub: %v", errInvalidClaims, err)
		}
	case float64:
		userID = int64(sub)
	default:
		return domain.Actor{}, fmt.Errorf("%w: sub is missing", errInvalidClaims)
	}

	role, _ := claims["role"].(string)
	return buildActor(userID, role)
}

func parseHeaders(userIDValue, roleValue string) (domain.Actor, error) {
	userID, err := strconv.ParseInt(userIDValue, 10, 64)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %s: %v", errInvalidClaims, HeaderUserID, err)
	}
	return buildActor(userID, roleValue)
}

// buildActor без роли считает пользователя гостем
func buildActor(userID int64, roleValue string) (domain.Actor, error) {
	role := domain.RoleGuest
	if roleValue != "" {
		parsed, err := domain.ParseRole(roleValue)
		if err != nil {
			return domain.Actor{}, err
		}
		role = parsed
	}

	actor := domain.Actor{UserID: userID, Role: role}
	if !actor.IsAuthenticated() {
		return domain.Actor{}, fmt.Errorf("%w: user id must be positive", errInvalidClaims)
	}
	return actor, nil
}
