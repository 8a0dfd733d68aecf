package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc         *AuthServiceImpl
	userRepo    *mocks.MockUserRepository
	historyRepo *mocks.MockLoginHistoryRepository
	hashSvc     *mocks.MockHashService
	tokenSvc    *mocks.MockTokenService
	ctrl        *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		userRepo:    mocks.NewMockUserRepository(ctrl),
		historyRepo: mocks.NewMockLoginHistoryRepository(ctrl),
		hashSvc:     mocks.NewMockHashService(ctrl),
		tokenSvc:    mocks.NewMockTokenService(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewAuthService(d.userRepo, d.historyRepo, d.hashSvc, d.tokenSvc, zerolog.Nop())
	return d
}

func TestAuthService_Register_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Str0ngPass!"}

	// Expect: check username uniqueness
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(nil, nil)
	// Expect: hash password
	d.hashSvc.EXPECT().Hash(req.Password).Return("$2a$10$hashed", nil)
	// Expect: create user
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			assert.Equal(t, "$2a$10$hashed", u.PasswordHash)
			assert.Equal(t, domain.RoleUser, u.Role)
			u.ID = 1
			return nil
		},
	)

	user, err := d.svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)

	_, err := d.svc.Register(ctx, ports.RegisterRequest{Username: "alice", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUsernameExists))
}

func TestAuthService_Register_DuplicateOnInsert(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(nil, nil)
	d.hashSvc.EXPECT().Hash("pw").Return("hash", nil)
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).Return(domain.ErrUserExists)

	_, err := d.svc.Register(ctx, ports.RegisterRequest{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUsernameExists))
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Register(context.Background(), ports.RegisterRequest{Username: "  ", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidArgument(err))
}

func TestAuthService_Register_StoreFault(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(nil, errors.New("db down"))

	_, err := d.svc.Register(ctx, ports.RegisterRequest{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperror.IsStoreUnavailable(err))
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	user := &domain.User{ID: 1, Username: "alice", PasswordHash: "hash", Role: domain.RoleUser}
	expiry := time.Now().Add(2 * time.Hour)

	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(user, nil)
	d.hashSvc.EXPECT().Verify("pw", "hash").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(user).Return("jwt-token", expiry, nil)
	d.historyRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, h *domain.LoginHistory) error {
			assert.True(t, h.Success)
			assert.Equal(t, "10.0.0.1", h.IPAddress)
			return nil
		},
	)

	result, err := d.svc.Login(ctx, ports.LoginRequest{Username: "alice", Password: "pw", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, expiry, result.ExpiresAt)
	assert.Equal(t, domain.RoleUser, result.Role)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, nil)
	d.historyRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, h *domain.LoginHistory) error {
			assert.False(t, h.Success)
			return nil
		},
	)

	_, err := d.svc.Login(ctx, ports.LoginRequest{Username: "ghost", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(&domain.User{Username: "alice", PasswordHash: "hash"}, nil)
	d.hashSvc.EXPECT().Verify("bad", "hash").Return(false, nil)
	d.historyRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	_, err := d.svc.Login(ctx, ports.LoginRequest{Username: "alice", Password: "bad"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCredentials))
}

func TestAuthService_Login_HistoryFailureIsNotFatal(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	user := &domain.User{Username: "alice", PasswordHash: "hash"}
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(user, nil)
	d.hashSvc.EXPECT().Verify("pw", "hash").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(user).Return("t", time.Now(), nil)
	d.historyRepo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))

	_, err := d.svc.Login(ctx, ports.LoginRequest{Username: "alice", Password: "pw"})
	assert.NoError(t, err)
}

func TestAuthService_Login_TokenFailure(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	user := &domain.User{Username: "alice", PasswordHash: "hash"}
	d.userRepo.EXPECT().GetByUsername(ctx, "alice").Return(user, nil)
	d.hashSvc.EXPECT().Verify("pw", "hash").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(user).Return("", time.Time{}, errors.New("sign failed"))

	_, err := d.svc.Login(ctx, ports.LoginRequest{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInternal))
}
