package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/utils"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

type httpAuthClient struct {
	client *utils.HTTPClient

	mu     sync.RWMutex
	tokens models.TokenPair

	logger *logger.Logger
}

// NewHTTPAuthClient constructs an HTTP implementation of [AuthClient]
// rooted at address. A bare "host:port" is treated as http. A zero timeout
// keeps the client default.
func NewHTTPAuthClient(address string, timeout time.Duration, logger *logger.Logger) (AuthClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid auth api address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &httpAuthClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthClient) SetTokens(pair models.TokenPair) {
	h.mu.Lock()
	h.tokens = pair
	h.mu.Unlock()
}

func (h *httpAuthClient) Tokens() models.TokenPair {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokens
}

func (h *httpAuthClient) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var out models.LoginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetTokens(out.TokenPair)
	h.logger.Debug().Int64("user_id", out.User.ID).Msg("logged in")
	return out, nil
}

func (h *httpAuthClient) Refresh(ctx context.Context) (models.TokenPair, error) {
	refreshToken := h.Tokens().RefreshToken
	if refreshToken == "" {
		return models.TokenPair{}, fmt.Errorf("%w: no refresh token held", ErrUnauthorized)
	}

	var out models.TokenPair
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&out).
		Post("/auth/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(out)
	return out, nil
}

func (h *httpAuthClient) Me(ctx context.Context) (models.PublicUser, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	var out models.PublicUser
	resp, err := req.SetResult(&out).Get("/auth/me")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}
	return out, nil
}

func (h *httpAuthClient) Register(ctx context.Context, body models.RegisterRequest) (models.PublicUser, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	var out models.PublicUser
	resp, err := req.SetBody(body).SetResult(&out).Post("/auth/register")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}
	return out, nil
}

func (h *httpAuthClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(models.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}).
		Post("/auth/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpAuthClient) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetTokens(models.TokenPair{})
	return nil
}

func (h *httpAuthClient) VerifyPassword(ctx context.Context, password string) (models.VerifyResult, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.VerifyResult{}, err
	}

	var out models.VerifyResult
	resp, err := req.
		SetBody(models.VerifyPasswordRequest{Password: password}).
		SetResult(&out).
		Post("/auth/verify-password")
	if err != nil {
		return models.VerifyResult{}, fmt.Errorf("verify password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyResult{}, err
	}
	return out, nil
}

func (h *httpAuthClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAuthClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	accessToken := h.Tokens().AccessToken
	if accessToken == "" {
		return nil, fmt.Errorf("%w: no access token held", ErrUnauthorized)
	}
	return h.client.WithBearer(accessToken).SetContext(ctx), nil
}
