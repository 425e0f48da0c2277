package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/validation"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

// PasswordCost costo bcrypt de los hashes de contraseña.
const PasswordCost = bcrypt.DefaultCost

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	cost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, cost: PasswordCost}
}

// WithCost cambia el costo bcrypt (tests).
func (uc *UserUseCase) WithCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// Create registra un usuario nuevo con la contraseña hasheada.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := dto.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		StoreName:    in.StoreName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]*dto.UserResponse, error) {
	page := dto.NewPage(limit, offset)
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return entityToUserResponse(user), nil
}

// Update modifica el registro propio; la contraseña sólo cambia si viene informada.
func (uc *UserUseCase) Update(ctx context.Context, callerID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if callerID != id {
		return nil, domain.ErrForbidden
	}
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	email := dto.NormalizeEmail(in.Email)
	if email != user.Email {
		other, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	user.Name = in.Name
	user.StoreName = in.StoreName
	user.Email = email
	if in.Password != nil {
		hash, err := uc.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Delete elimina el registro propio.
func (uc *UserUseCase) Delete(ctx context.Context, callerID, id string) error {
	if callerID != id {
		return domain.ErrForbidden
	}
	if err := validation.ID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// hash bcrypt limita la contraseña a 72 bytes; más larga es un error de entrada.
func (uc *UserUseCase) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("password", "A senha pode ter no máximo 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
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
