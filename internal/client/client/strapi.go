package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/avasilyev/cmskeeper/internal/client/models"
	"github.com/avasilyev/cmskeeper/internal/client/repositories/tokens"
	"github.com/avasilyev/cmskeeper/internal/logging"
)

// tokenKey is the vault key under which the session token is stored.
const tokenKey = "session_token"

// principalFetchRetries bounds the backoff retry on the idempotent principal
// fetch. Login/register are never retried: they mutate session state.
const principalFetchRetries = 2

// StrapiClient implements Client against a Strapi backend:
//
//	POST /auth/local          — login
//	POST /auth/local/register — registration
//	GET  /users/me            — current principal (Bearer token)
//
// Transport and HTTP-status outcomes are folded into the package's sentinel
// errors so callers can match with errors.Is.
type StrapiClient struct {
	baseURL string
	http    *http.Client
	tokens  tokens.Repository
	log     logging.Logger
}

func NewStrapiClient(baseURL string, timeout time.Duration, store tokens.Repository, log logging.Logger) *StrapiClient {
	return &StrapiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  store,
		log:     log,
	}
}

// authResponse is the payload of both auth endpoints.
type authResponse struct {
	JWT  string       `json:"jwt"`
	User userResponse `json:"user"`
}

type userResponse struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
}

func (u userResponse) toModel() models.User {
	return models.User{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}

func (c *StrapiClient) Login(ctx context.Context, identifier string, password []byte) error {
	body := map[string]string{"identifier": identifier, "password": string(password)}

	var resp authResponse
	if err := c.postJSON(ctx, "/auth/local", body, &resp); err != nil {
		return err
	}
	if resp.JWT == "" {
		return fmt.Errorf("%w: auth response without jwt", ErrDecode)
	}
	return c.tokens.Reset(ctx, tokenKey, []byte(resp.JWT))
}

func (c *StrapiClient) Register(ctx context.Context, username, email string, password []byte) error {
	body := map[string]string{"username": username, "email": email, "password": string(password)}

	var resp authResponse
	if err := c.postJSON(ctx, "/auth/local/register", body, &resp); err != nil {
		return err
	}
	if resp.JWT == "" {
		return fmt.Errorf("%w: auth response without jwt", ErrDecode)
	}
	return c.tokens.Reset(ctx, tokenKey, []byte(resp.JWT))
}

func (c *StrapiClient) Logout(ctx context.Context) error {
	return c.tokens.Delete(ctx, tokenKey)
}

func (c *StrapiClient) Token(ctx context.Context) (string, error) {
	value, err := c.tokens.Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// CurrentUser fetches the principal owning the stored token. Transient
// failures of this idempotent call are retried with fibonacci backoff;
// auth and decode failures are returned immediately.
func (c *StrapiClient) CurrentUser(ctx context.Context) (models.User, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return models.Empty, err
	}
	if token == "" {
		return models.Empty, fmt.Errorf("%w: no stored token", ErrUnauthorized)
	}

	var u userResponse
	backoff := retry.WithMaxRetries(principalFetchRetries, retry.NewFibonacci(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.getJSON(ctx, "/users/me", token, &u); err != nil {
			if errors.Is(err, ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.Empty, err
	}
	return u.toModel(), nil
}

// TokenExpiry inspects the stored token's exp claim without verifying the
// signature. Display only: session validity is always decided by the backend.
func (c *StrapiClient) TokenExpiry(ctx context.Context) (time.Time, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if token == "" {
		return time.Time{}, ErrTokenNotFound
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%w: token without exp claim", ErrDecode)
	}
	return exp.Time, nil
}

func (c *StrapiClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *StrapiClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "", out)
}

func (c *StrapiClient) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, token, out)
}

func (c *StrapiClient) do(req *http.Request, token string, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed",
			"request_id", requestID, "path", req.URL.Path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		c.log.Warn(req.Context(), "request rejected",
			"request_id", requestID, "path", req.URL.Path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// mapStatus folds HTTP statuses into sentinel errors. Strapi signals bad
// credentials and rejected registrations with 400.
func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest,
		code == http.StatusUnauthorized,
		code == http.StatusForbidden:
		return fmt.Errorf("%w: http %d", ErrUnauthorized, code)
	case code >= 500 || code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d", ErrUnavailable, code)
	default:
		return fmt.Errorf("unexpected http status %d", code)
	}
}
