package anubis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/dinor-predictions/internal/domain/user"
	basecache "github.com/riskibarqy/dinor-predictions/internal/platform/cache"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
	"github.com/riskibarqy/dinor-predictions/internal/platform/resilience"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

const maxIntrospectResponseBytes = 1 << 20

var errAnubisTransient = errors.New("anubis transient failure")

type Config struct {
	BaseURL           string
	IntrospectPath    string
	AdminKey          string
	PrincipalCacheTTL time.Duration
	Circuit           resilience.CircuitBreakerConfig
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
// Verified principals are cached by token hash for PrincipalCacheTTL.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	principals    *basecache.Store
	breaker       *resilience.CircuitBreaker
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	var principals *basecache.Store
	if cfg.PrincipalCacheTTL > 0 {
		principals = basecache.NewStore(cfg.PrincipalCacheTTL)
	}

	logger = logger.Named("anubis")
	circuit := cfg.Circuit
	if circuit.OnStateChange == nil {
		circuit.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("anubis circuit state changed", "from", string(from), "to", string(to))
		}
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		principals:    principals,
		breaker:       resilience.NewCircuitBreakerFromConfig(circuit),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if c.principals == nil {
		return c.introspect(ctx, token)
	}

	v, err := c.principals.GetOrLoad(ctx, "principal:"+hashToken(token), func(ctx context.Context) (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, _ := v.(user.Principal)
	principal.Roles = append([]string(nil), principal.Roles...)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	var principal user.Principal
	err := resilience.Execute(c.breaker, func() error {
		var callErr error
		principal, callErr = c.callIntrospect(ctx, token)
		return callErr
	}, isCircuitFailure)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return user.Principal{}, fmt.Errorf("%w: anubis circuit is open", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	return principal, nil
}

func (c *Client) callIntrospect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "anubis introspection request failed", "error", err)
		return user.Principal{}, transientf("request introspection to anubis: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectResponseBytes))
	if err != nil {
		return user.Principal{}, transientf("read introspect response: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// Anubis rejects our admin key, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, transientf("anubis rejected admin key with status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, transientf("anubis introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, transientf("unmarshal introspect response: %v", err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has no user_id", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: strings.TrimSpace(decoded.UserID),
		Email:  strings.TrimSpace(decoded.Email),
		Roles:  decoded.Roles,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

func transientf(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", usecase.ErrDependencyUnavailable, errAnubisTransient, fmt.Sprintf(format, args...))
}
