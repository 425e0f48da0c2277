package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/meustock-api/internal/application/auth"
	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/infrastructure/memory"
	"github.com/jhoicas/meustock-api/pkg/jwt"
)

func setup(t *testing.T, now *time.Time) (*auth.AuthUseCase, *jwt.Service) {
	t.Helper()
	store := memory.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u1", Name: "Ana", StoreName: "Loja", Email: "ana@x.com", PasswordHash: string(hash),
	}))
	tokens, err := jwt.NewService("test-secret", "meustock-test", jwt.WithClock(func() time.Time { return *now }))
	require.NoError(t, err)
	return auth.NewAuthUseCase(store.Users(), tokens), tokens
}

func TestLogin_TokenValidoPorUnaHora(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	uc, tokens := setup(t, &now)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@x.com ", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)

	id, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{ID: "u1", Email: "ana@x.com"}, id)

	now = now.Add(time.Hour + time.Second)
	_, err = tokens.Verify(resp.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestLogin_SenhaIncorreta(t *testing.T) {
	now := time.Now()
	uc, _ := setup(t, &now)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "errada1"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestLogin_UsuarioNaoEncontrado(t *testing.T) {
	now := time.Now()
	uc, _ := setup(t, &now)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
