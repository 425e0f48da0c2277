package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL vigencia de todo token emitido.
const TokenTTL = time.Hour

// Errores de autenticación. ErrTokenInvalid y ErrTokenExpired envuelven ErrAuth.
var (
	ErrAuth         = errors.New("no autenticado")
	ErrTokenInvalid = fmt.Errorf("%w: token inválido", ErrAuth)
	ErrTokenExpired = fmt.Errorf("%w: token expirado", ErrAuth)
	ErrEmptySecret  = errors.New("jwt: secret vacío")
)

// Identity identidad del llamador contenida en el token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Claims incluye los claims estándar JWT más la identidad {id, email}.
type Claims struct {
	jwt.RegisteredClaims
	Identity
}

// Service emite y verifica tokens firmados con HS256. Es inmutable y seguro para uso concurrente.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option configura el Service.
type Option func(*Service)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio. Falla si el secreto está vacío.
func NewService(secret, issuer string, opts ...Option) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	s := &Service{secret: []byte(secret), issuer: issuer, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue genera un token que expira exactamente TokenTTL después de ahora.
func (s *Service) Issue(id Identity) (string, error) {
	if id.ID == "" {
		return "", fmt.Errorf("jwt: identidad sin id")
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Identity: id,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma y expiración y devuelve la identidad embebida.
func (s *Service) Verify(tokenString string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Identity.ID == "" {
		return Identity{}, ErrTokenInvalid
	}
	return claims.Identity, nil
}

type identityKey struct{}

// WithIdentity ata la identidad verificada al contexto de la petición.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext recupera la identidad puesta por el middleware de auth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.ID != ""
}
