package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID uint) (string, error)
}

type AuthService struct {
	repo   AuthUserRepository
	tokens TokenIssuer
}

func NewAuthService(repo AuthUserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

// Register stores a new user with a bcrypt hashed password and returns it
// together with a freshly signed token.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, string, error) {
	user.Email = normalizeEmail(user.Email)

	if err := s.checkEmailExists(ctx, user.Email); err != nil {
		return domain.User{}, "", err
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, "", err
	}
	user.Password = hashedPassword

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.repo.Create -> %w", err)
	}

	token, err := s.tokens.GenerateToken(created.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.tokens.GenerateToken -> %w", err)
	}

	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}

		return "", fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrWrongPassword
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("s.tokens.GenerateToken -> %w", err)
	}

	return token, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrUserEmailExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
