package jwt_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/meustock-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newService(t *testing.T, clock *fakeClock) *pkgjwt.Service {
	t.Helper()
	svc, err := pkgjwt.NewService(testSecret, "meustock-test", pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestNewService_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewService("", "x")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)

	_, err = pkgjwt.NewService("   ", "x")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	svc := newService(t, clock)

	tok, err := svc.Issue(pkgjwt.Identity{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.ID)
	assert.Equal(t, "a@b.com", id.Email)
}

func TestVerify_ValidoDuranteLaHora(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	svc := newService(t, clock)
	tok, err := svc.Issue(pkgjwt.Identity{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	clock.Advance(59*time.Minute + 59*time.Second)
	_, err = svc.Verify(tok)
	assert.NoError(t, err, "el token sigue vigente antes de cumplir la hora")
}

func TestVerify_Expirado(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	svc := newService(t, clock)
	tok, err := svc.Issue(pkgjwt.Identity{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	clock.Advance(pkgjwt.TokenTTL + time.Second)
	_, err = svc.Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
	assert.ErrorIs(t, err, pkgjwt.ErrAuth)
}

func TestVerify_SecretIncorrecto(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newService(t, clock)
	tok, err := svc.Issue(pkgjwt.Identity{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	other, err := pkgjwt.NewService("otro-secret-completamente-distinto", "meustock-test", pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
	assert.False(t, errors.Is(err, pkgjwt.ErrTokenExpired))
}

func TestVerify_TokenManipulado(t *testing.T) {
	svc := newService(t, &fakeClock{t: time.Now()})
	tok, err := svc.Issue(pkgjwt.Identity{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)

	_, err = svc.Verify("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestIssue_SinID(t *testing.T) {
	svc := newService(t, &fakeClock{t: time.Now()})
	_, err := svc.Issue(pkgjwt.Identity{Email: "a@b.com"})
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	ctx := pkgjwt.WithIdentity(context.Background(), pkgjwt.Identity{ID: "u1", Email: "e@x.com"})
	id, ok := pkgjwt.IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)

	_, ok = pkgjwt.IdentityFromContext(context.Background())
	assert.False(t, ok)
}
