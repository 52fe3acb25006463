package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/repository"
	"crateledger-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Register(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return user, nil
}

// RehashPasswords upgrades credentials imported from the legacy system, which
// stored some passwords in the clear. Anything that does not look like a
// bcrypt hash is treated as plaintext and hashed in place.
func (s *authService) RehashPasswords(ctx context.Context) (int, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	updated := 0
	for _, u := range users {
		if strings.HasPrefix(u.PasswordHash, "$2a$") || strings.HasPrefix(u.PasswordHash, "$2b$") {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return updated, err
		}
		if err := s.userRepo.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
			return updated, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		updated++
	}
	return updated, nil
}
