package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/chartflow/portal/internal/api/metrics"
	"github.com/chartflow/portal/internal/core/domain"
)

const clientInfo = "chartflow-portal/1.0"

// gotrueClient talks to the GoTrue REST API behind a Supabase project.
type gotrueClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func newGoTrueClient(projectURL, apiKey string, httpClient *http.Client, limiter *rate.Limiter) *gotrueClient {
	return &gotrueClient{
		baseURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		http:    httpClient,
		limiter: limiter,
	}
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// gotrueError covers the error shapes GoTrue has used across versions.
type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

type credentials struct {
	Email    string         `json:"email"`
	Password string         `json:"password,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

func (c *gotrueClient) signUp(ctx context.Context, email, password, fullName string) (*tokenResponse, error) {
	body := credentials{Email: email, Password: password, Data: map[string]any{"full_name": fullName}}
	var out tokenResponse
	if err := c.do(ctx, "signup", http.MethodPost, "/signup", nil, body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *gotrueClient) passwordGrant(ctx context.Context, email, password string) (*tokenResponse, error) {
	q := url.Values{"grant_type": {"password"}}
	var out tokenResponse
	if err := c.do(ctx, "signin", http.MethodPost, "/token", q, credentials{Email: email, Password: password}, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *gotrueClient) refreshGrant(ctx context.Context, refreshToken string) (*tokenResponse, error) {
	q := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}
	var out tokenResponse
	if err := c.do(ctx, "refresh", http.MethodPost, "/token", q, body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *gotrueClient) recoverPassword(ctx context.Context, email string) error {
	return c.do(ctx, "recover", http.MethodPost, "/recover", nil, credentials{Email: email}, "", nil)
}

func (c *gotrueClient) logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, "signout", http.MethodPost, "/logout", nil, nil, accessToken, nil)
}

func (c *gotrueClient) user(ctx context.Context, accessToken string) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, "user", http.MethodGet, "/user", nil, nil, accessToken, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// do performs one call. Non-2xx answers become *domain.GatewayError; anything
// else that goes wrong is returned as a plain wrapped error.
func (c *gotrueClient) do(ctx context.Context, op, method, path string, q url.Values, body any, bearer string, out any) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if _, rejected := domain.AsGatewayError(err); rejected {
			result = "rejected"
		} else if err != nil {
			result = "error"
		}
		metrics.GatewayCallDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("gotrue %s: rate limit: %w", op, err)
		}
	}

	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gotrue %s: marshal: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("gotrue %s: build request: %w", op, err)
	}
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Info", clientInfo)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("gotrue %s: read body: %w", op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var ge gotrueError
		_ = json.Unmarshal(raw, &ge)
		msg := ge.text()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &domain.GatewayError{Message: msg, Status: resp.StatusCode}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("gotrue %s: decode: %w", op, err)
		}
	}
	return nil
}
