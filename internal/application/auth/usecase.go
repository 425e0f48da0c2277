package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
	"github.com/jhoicas/meustock-api/pkg/jwt"
)

// TokenIssuer emite el token de sesión para una identidad.
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// AuthUseCase caso de uso de login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// ErrUserNotFound si el email no existe; ErrInvalidPassword si la contraseña no coincide.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, dto.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidPassword
		}
		return nil, err
	}
	token, err := uc.tokens.Issue(jwt.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		StoreName: u.StoreName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
