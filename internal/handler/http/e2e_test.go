package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/internal/adapter"
	"github.com/myseetara-source/erp-seetara-sub007/internal/config"
	"github.com/myseetara-source/erp-seetara-sub007/internal/crypto"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/ratelimit"
	"github.com/myseetara-source/erp-seetara-sub007/internal/service"
	"github.com/myseetara-source/erp-seetara-sub007/internal/store"
	"github.com/myseetara-source/erp-seetara-sub007/internal/token"
	"github.com/myseetara-source/erp-seetara-sub007/internal/utils"
	"github.com/myseetara-source/erp-seetara-sub007/internal/workers"
	"github.com/myseetara-source/erp-seetara-sub007/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUsers is an in-memory store.UserRepository for end-to-end tests.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[int64]models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	user.UserID = m.nextID
	user.CreatedAt = time.Now().UTC()
	m.users[user.UserID] = user
	return user, nil
}

func (m *memoryUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memoryUsers) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) UpdateLastLogin(_ context.Context, userID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.LastLoginAt = &at
	m.users[userID] = u
	return nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, userID int64, passwordHash string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &at
	m.users[userID] = u
	return nil
}

func (m *memoryUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindUserByEmail(ctx, email)
	return err == nil, nil
}

// newTestServer wires the real services over in-memory storage and returns
// a client pointed at it.
func newTestServer(t *testing.T, users *memoryUsers) *utils.HTTPClient {
	t.Helper()
	return utils.NewHTTPClient(startTestServer(t, users))
}

// startTestServer returns the base URL of a server backed by users.
func startTestServer(t *testing.T, users *memoryUsers) string {
	t.Helper()
	log := logger.Nop()

	hasher, err := crypto.NewBcryptHasher(4)
	require.NoError(t, err)

	issuer, err := token.NewIssuer(config.Auth{
		AccessTokenSignKey:  "e2e-access",
		RefreshTokenSignKey: "e2e-refresh",
		TokenIssuer:         "erp-auth-e2e",
		AccessTokenTTL:      15 * time.Minute,
		RefreshTokenTTL:     time.Hour,
	})
	require.NoError(t, err)

	limiter, err := ratelimit.NewMemoryLimiter(5, time.Minute)
	require.NoError(t, err)

	recorder := workers.NewLastLoginRecorder(users, nil, config.Workers{LastLoginWorkers: 1, LastLoginQueueSize: 16, LastLoginTimeout: time.Second}, log)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		recorder.Run(ctx)
		close(done)
	}()

	cfg := config.Defaults()
	services, err := service.NewServices(service.Dependencies{
		Storages: &store.Storages{
			UserRepository:  users,
			RevocationStore: store.NewMemoryRevocationStore(0, time.Hour, log),
		},
		Hasher:    hasher,
		Issuer:    issuer,
		Limiter:   limiter,
		LastLogin: recorder,
	}, &cfg, log)
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(services, testServerConfig, log).Init())
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})

	return srv.URL
}

func seedUser(t *testing.T, users *memoryUsers, email, password string, role models.Role) models.User {
	t.Helper()

	hasher, err := crypto.NewBcryptHasher(4)
	require.NoError(t, err)
	digest, err := hasher.Hash(password)
	require.NoError(t, err)

	u, err := users.CreateUser(context.Background(), models.User{
		Email:        email,
		PasswordHash: digest,
		Name:         strings.Split(email, "@")[0],
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func login(t *testing.T, client *utils.HTTPClient, email, password string) models.LoginResponse {
	t.Helper()

	var out models.LoginResponse
	resp, err := client.R().
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	return out
}

func TestE2E_SessionLifecycle(t *testing.T) {
	users := newMemoryUsers()
	seedUser(t, users, "admin@example.com", "admin-password", models.RoleAdmin)
	client := newTestServer(t, users)

	admin := login(t, client, "ADMIN@example.com", "admin-password")
	assert.Equal(t, models.RoleAdmin, admin.User.Role)

	// admin registers an operator
	var created models.PublicUser
	resp, err := client.WithBearer(admin.AccessToken).
		SetBody(models.RegisterRequest{Email: "op@example.com", Password: "operator-pass", Name: "Op"}).
		SetResult(&created).
		Post("/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	assert.Equal(t, models.RoleOperator, created.Role)
	assert.NotContains(t, resp.String(), "passwordHash")

	// duplicate email
	resp, err = client.WithBearer(admin.AccessToken).
		SetBody(models.RegisterRequest{Email: "OP@example.com", Password: "operator-pass", Name: "Op"}).
		Post("/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())

	op := login(t, client, "op@example.com", "operator-pass")

	// operators cannot register users
	resp, err = client.WithBearer(op.AccessToken).
		SetBody(models.RegisterRequest{Email: "x@example.com", Password: "whatever-pass", Name: "X"}).
		Post("/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	var me models.PublicUser
	resp, err = client.WithBearer(op.AccessToken).SetResult(&me).Get("/auth/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, created.ID, me.ID)

	// refresh yields a working access token
	var pair models.TokenPair
	resp, err = client.R().SetBody(models.RefreshRequest{RefreshToken: op.RefreshToken}).SetResult(&pair).Post("/auth/refresh")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.WithBearer(pair.AccessToken).Get("/auth/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	// an access token is not a refresh token
	resp, err = client.R().SetBody(models.RefreshRequest{RefreshToken: op.AccessToken}).Post("/auth/refresh")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// logout revokes the presented access token only
	resp, err = client.WithBearer(op.AccessToken).Post("/auth/logout")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.WithBearer(op.AccessToken).Get("/auth/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp, err = client.WithBearer(pair.AccessToken).Get("/auth/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestE2E_LoginFailuresLookAlike(t *testing.T) {
	users := newMemoryUsers()
	seedUser(t, users, "alice@example.com", "alice-password", models.RoleOperator)
	inactive := seedUser(t, users, "bob@example.com", "bob-password", models.RoleOperator)
	inactive.IsActive = false
	users.users[inactive.UserID] = inactive

	client := newTestServer(t, users)

	attempts := []models.LoginRequest{
		{Email: "alice@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "alice-password"},
		{Email: "bob@example.com", Password: "bob-password"},
	}

	var bodies []string
	for _, a := range attempts {
		resp, err := client.R().SetBody(a).Post("/auth/login")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
		bodies = append(bodies, resp.String())
	}

	assert.JSONEq(t, `{"error":"Invalid email or password"}`, bodies[0])
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[0], bodies[2])
}

func TestE2E_SecureActionGate(t *testing.T) {
	users := newMemoryUsers()
	seedUser(t, users, "op@example.com", "operator-pass", models.RoleOperator)
	client := newTestServer(t, users)

	op := login(t, client, "op@example.com", "operator-pass")

	verify := func(password string) (int, models.VerifyResult) {
		var out models.VerifyResult
		resp, err := client.WithBearer(op.AccessToken).
			SetBody(models.VerifyPasswordRequest{Password: password}).
			SetResult(&out).
			Post("/auth/verify-password")
		require.NoError(t, err)
		return resp.StatusCode(), out
	}

	status, result := verify("operator-pass")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.Valid)

	for i := 0; i < 4; i++ {
		status, result = verify("wrong-pass")
		assert.Equal(t, http.StatusOK, status)
		assert.False(t, result.Valid)
	}

	// sixth attempt in the window is refused even with the right password
	status, _ = verify("operator-pass")
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestE2E_ChangePassword(t *testing.T) {
	users := newMemoryUsers()
	seedUser(t, users, "op@example.com", "operator-pass", models.RoleOperator)
	client := newTestServer(t, users)

	op := login(t, client, "op@example.com", "operator-pass")

	resp, err := client.WithBearer(op.AccessToken).
		SetBody(models.ChangePasswordRequest{CurrentPassword: "not-it", NewPassword: "brand-new-pass"}).
		Post("/auth/change-password")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp, err = client.WithBearer(op.AccessToken).
		SetBody(models.ChangePasswordRequest{CurrentPassword: "operator-pass", NewPassword: "brand-new-pass"}).
		Post("/auth/change-password")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().SetBody(models.LoginRequest{Email: "op@example.com", Password: "operator-pass"}).Post("/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	login(t, client, "op@example.com", "brand-new-pass")
}

func TestE2E_AuthClient(t *testing.T) {
	users := newMemoryUsers()
	seedUser(t, users, "op@example.com", "operator-pass", models.RoleOperator)

	client, err := adapter.NewHTTPAuthClient(startTestServer(t, users), 5*time.Second, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Login(ctx, "op@example.com", "wrong-pass")
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	out, err := client.Login(ctx, "op@example.com", "operator-pass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOperator, out.User.Role)

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, me.ID)

	_, err = client.Register(ctx, models.RegisterRequest{Email: "x@example.com", Password: "whatever-pass", Name: "X"})
	assert.ErrorIs(t, err, adapter.ErrForbidden)

	result, err := client.VerifyPassword(ctx, "operator-pass")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	_, err = client.Refresh(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, out.AccessToken, client.Tokens().AccessToken)

	require.NoError(t, client.Logout(ctx))
	_, err = client.Me(ctx)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}
