package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo    ports.UserRepository
	historyRepo ports.LoginHistoryRepository
	hashSvc     ports.HashService
	tokenSvc    ports.TokenService
	log         zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	historyRepo ports.LoginHistoryRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		historyRepo: historyRepo,
		hashSvc:     hashSvc,
		tokenSvc:    tokenSvc,
		log:         log,
	}
}

// Register creates a new user with the default role.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.Validation("Username and password are required.")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, apperror.ErrUsernameExists()
		}
		return nil, apperror.StoreUnavailable(fmt.Errorf("create user: %w", err))
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login validates credentials and returns a JWT token.
// Every attempt is appended to the login history.
func (s *AuthServiceImpl) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		s.recordLogin(ctx, req, false)
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		s.recordLogin(ctx, req, false)
		return nil, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.recordLogin(ctx, req, true)

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiry,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func (s *AuthServiceImpl) recordLogin(ctx context.Context, req ports.LoginRequest, success bool) {
	entry := &domain.LoginHistory{
		Username:  req.Username,
		Success:   success,
		IPAddress: req.ClientIP,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("username", req.Username).Msg("failed to record login history")
	}
}
