package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// UserService coordina registro, inicio de sesion y lectura de usuarios.
type UserService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	hasher  PasswordHasher
	limiter SignInLimiter
	// dummyHash se compara cuando el email no existe para igualar el coste de la respuesta.
	dummyHash string
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, limiter SignInLimiter) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &UserService{
		logger:  logger,
		users:   users,
		hasher:  hasher,
		limiter: limiter,
	}
	if hasher != nil {
		if h, err := hasher.Hash(uuid.NewString()); err == nil {
			svc.dummyHash = h
		}
	}
	return svc
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
)

func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (domain.User, error) {
	if s.users == nil || s.hasher == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	email := strings.TrimSpace(input.Email)
	name := input.Name

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.User{}, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// SignIn valida email y contraseña. Email desconocido y contraseña erronea devuelven el mismo error.
// Un acceso correcto reinicia el contador del limitador, que solo acumula fallos.
func (s *UserService) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	if s.users == nil || s.hasher == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.limiter != nil && !s.limiter.Allow(email) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.limiter != nil {
		s.limiter.Reset(email)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	// Los ids son UUID; cualquier otro sujeto no puede existir.
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
