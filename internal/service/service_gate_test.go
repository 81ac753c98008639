package service

import (
	"context"
	"testing"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/internal/crypto"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/mock"
	"github.com/myseetara-source/erp-seetara-sub007/internal/ratelimit"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
	"github.com/myseetara-source/erp-seetara-sub007/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestGate(t *testing.T, users store.UserRepository, hasher crypto.PasswordHasher, limiter ratelimit.Limiter) GateService {
	t.Helper()

	svc, err := NewGateService(users, hasher, limiter, logger.Nop())
	require.NoError(t, err)
	return svc
}

func TestGateService_VerifyPassword_Outcomes(t *testing.T) {
	hasher, err := crypto.NewBcryptHasher(4)
	require.NoError(t, err)
	digest, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     models.User
		findErr  error
		password string
		want     models.VerifyResult
	}{
		{
			name:     "correct password",
			user:     models.User{UserID: 5, PasswordHash: digest, IsActive: true},
			password: "correct-horse",
			want:     models.VerifyResult{Valid: true, Message: "Password verified"},
		},
		{
			name:     "wrong password",
			user:     models.User{UserID: 5, PasswordHash: digest, IsActive: true},
			password: "wrong-horse",
			want:     models.VerifyResult{Valid: false, Message: "Password verification failed"},
		},
		{
			name:     "inactive user",
			user:     models.User{UserID: 5, PasswordHash: digest, IsActive: false},
			password: "correct-horse",
			want:     models.VerifyResult{Valid: false, Message: "Password verification failed"},
		},
		{
			name:     "user gone",
			findErr:  store.ErrUserNotFound,
			password: "correct-horse",
			want:     models.VerifyResult{Valid: false, Message: "Password verification failed"},
		},
		{
			name:     "store failure",
			findErr:  store.ErrExecutingQuery,
			password: "correct-horse",
			want:     models.VerifyResult{Valid: false, Message: "Password verification failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)
			limiter := mock.NewMockLimiter(ctrl)

			limiter.EXPECT().Allow(gomock.Any(), int64(5)).Return(models.GateAttempt{UserID: 5, Count: 1}, nil)
			users.EXPECT().FindUserByID(gomock.Any(), int64(5)).Return(tt.user, tt.findErr)

			got, err := newTestGate(t, users, hasher, limiter).VerifyPassword(context.Background(), 5, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateService_VerifyPassword_BlankCountsAsAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockLimiter(ctrl)

	limiter.EXPECT().Allow(gomock.Any(), int64(5)).Return(models.GateAttempt{UserID: 5, Count: 1}, nil)

	svc := newTestGate(t, mock.NewMockUserRepository(ctrl), mock.NewMockPasswordHasher(ctrl), limiter)
	got, err := svc.VerifyPassword(context.Background(), 5, "")

	require.NoError(t, err)
	assert.Equal(t, models.VerifyResult{Valid: false, Message: "Password is required"}, got)
}

func TestGateService_VerifyPassword_SixthAttemptRejectedBeforeHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)

	limiter, err := ratelimit.NewMemoryLimiter(5, time.Minute)
	require.NoError(t, err)

	users.EXPECT().FindUserByID(gomock.Any(), int64(5)).Return(models.User{UserID: 5, PasswordHash: "digest", IsActive: true}, nil).Times(5)
	hasher.EXPECT().Verify("wrong", "digest").Return(false).Times(5)

	svc := newTestGate(t, users, hasher, limiter)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		got, err := svc.VerifyPassword(ctx, 5, "wrong")
		require.NoError(t, err)
		assert.False(t, got.Valid)
	}

	_, err = svc.VerifyPassword(ctx, 5, "wrong")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, "too many attempts, try again later", err.Error())

	// another user has an independent budget
	users.EXPECT().FindUserByID(gomock.Any(), int64(6)).Return(models.User{}, store.ErrUserNotFound)
	hasher.EXPECT().Verify("wrong", "").Return(false)

	_, err = svc.VerifyPassword(ctx, 6, "wrong")
	assert.NoError(t, err)
}

func TestGateService_VerifyPassword_LimiterUnavailableFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockLimiter(ctrl)

	limiter.EXPECT().Allow(gomock.Any(), int64(5)).Return(models.GateAttempt{}, ratelimit.ErrLimiterUnavailable)

	svc := newTestGate(t, mock.NewMockUserRepository(ctrl), mock.NewMockPasswordHasher(ctrl), limiter)
	got, err := svc.VerifyPassword(context.Background(), 5, "correct-horse")

	require.NoError(t, err)
	assert.False(t, got.Valid)
}

func TestNewGateService_NilDependency(t *testing.T) {
	svc, err := NewGateService(nil, nil, nil, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrNilDependency)
}
