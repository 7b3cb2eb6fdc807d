package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-admin-api/pkg/jwt"
	"github.com/jhoicas/catalogo-admin-api/pkg/password"
)

// Principal identidad autenticada extraída del access token. Viaja como parámetro explícito.
type Principal struct {
	ID    string
	Email string
	Role  string
}

// HasRole true si el rol del principal está entre los indicados.
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// PrincipalFromPayload convierte los claims verificados en un Principal.
func PrincipalFromPayload(p jwt.Payload) Principal {
	return Principal{ID: p.ID, Email: p.Email, Role: p.Role}
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   jwt.Issuer
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens jwt.Issuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens, now: time.Now}
}

// Register crea un usuario con rol "user" y devuelve usuario + par de tokens.
// ErrEmailAlreadyExists si el email ya existe (también si la carrera la detecta el índice único).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, &domain.ValidationError{Fields: []domain.FieldError{dto.PasswordTooLongError()}}
		}
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         entity.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	pair, err := uc.tokens.IssuePair(payloadOf(user))
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{User: *ToUserResponse(user), Tokens: pair}, nil
}

// Login verifica credenciales. Email inexistente y password incorrecto dan el mismo error;
// el estado inactivo sólo se informa a quien ya presentó el password correcto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		password.VerifyDummy(in.Password)
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	pair, err := uc.tokens.IssuePair(payloadOf(user))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		User:         *ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh valida el refresh token contra su propio secreto y emite un par nuevo.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := uc.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}
	user, err := uc.userRepo.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidRefreshToken
	}
	pair, err := uc.tokens.IssuePair(payloadOf(user))
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// GetProfile usuario activo por id; ErrUserNotFound si no existe o está inactivo.
func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

func payloadOf(u *entity.User) jwt.Payload {
	return jwt.Payload{ID: u.ID, Email: u.Email, Role: u.Role}
}

// ToUserResponse proyecta la entidad sin el hash de password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
