package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thejerf/abtime"
	"go.uber.org/zap"
)

// DefaultSessionTTL es la vida de un token de sesion y de su cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

// ErrTokenInvalid cubre firma incorrecta, expiracion, sujeto ausente y formato roto.
var ErrTokenInvalid = errors.New("session token invalid")

// TokenService emite y valida tokens de sesion firmados con HS256.
// No guarda estado: un token vale hasta que expira aunque el usuario cierre sesion.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  abtime.AbstractTime
	logger *zap.Logger
	parser *jwt.Parser
}

func NewTokenService(secret []byte, ttl time.Duration, clock abtime.AbstractTime, logger *zap.Logger) *TokenService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenService{
		secret: key,
		ttl:    ttl,
		clock:  clock,
		logger: logger,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// TTL devuelve la vida configurada de los tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue firma un token con sub=userID, iat=ahora y exp=ahora+TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	if strings.TrimSpace(userID) == "" {
		return "", ErrTokenInvalid
	}
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify devuelve el sujeto del token o ErrTokenInvalid. El motivo concreto solo se registra.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return "", ErrTokenInvalid
	}
	var claims jwt.RegisteredClaims
	_, err := s.parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		s.logger.Debug("session token rejected", zap.String("reason", rejectReason(err)))
		return "", ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		s.logger.Debug("session token rejected", zap.String("reason", "subject"))
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing_claim"
	default:
		return "invalid"
	}
}
