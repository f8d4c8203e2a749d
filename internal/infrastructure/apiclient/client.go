// Package apiclient talks to the remote REST API that owns the credentials.
package apiclient

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

	"github.com/rs/zerolog"

	"github.com/Sairam-Chetpelly/visafrontend/internal/api/metrics"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
	"github.com/Sairam-Chetpelly/visafrontend/internal/pkg/validation"
)

const (
	endpointLogin    = "login"
	endpointRegister = "register"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// loginResponse is the body returned by POST /auth/login.
type loginResponse struct {
	Token     string        `json:"token"     validate:"required,jwt"`
	ID        domain.UserID `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"     validate:"omitempty,email"`
	UserType  string        `json:"userType"`
}

// messageBody is the part of any response body the client cares about.
type messageBody struct {
	Message string `json:"message"`
}

// Client implements ports.CredentialClient over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	decoder    ports.TokenDecoder
	validate   *validation.Validator
	log        zerolog.Logger
}

// New returns a Client rooted at baseURL (e.g. http://localhost:5000/api).
// Every request is bounded by timeout.
func New(baseURL string, timeout time.Duration, decoder ports.TokenDecoder, log zerolog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		decoder:    decoder,
		validate:   validation.New(),
		log:        log,
	}
}

// BaseURL returns the root every endpoint is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticate exchanges credentials for a session. The role claim in the
// token takes precedence over any userType in the body.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	payload := map[string]string{"email": email, "password": password}

	status, body, err := c.post(ctx, endpointLogin, "/auth/login", payload)
	if err != nil {
		return nil, c.fail(endpointLogin, domain.MsgLoginFailed, status, body, err)
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, c.malformed(endpointLogin, domain.MsgLoginFailed, status, err)
	}
	if err := c.validate.Struct(resp); err != nil {
		return nil, c.malformed(endpointLogin, domain.MsgLoginFailed, status, err)
	}

	claims, err := c.decoder.Decode(resp.Token)
	if err != nil {
		return nil, c.malformed(endpointLogin, domain.MsgLoginFailed, status, err)
	}

	user := domain.User{
		ID:        resp.ID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Email:     resp.Email,
		UserType:  claims.UserType,
	}
	if resp.UserType != "" && domain.UserType(resp.UserType) != claims.UserType {
		c.log.Warn().
			Str("body_user_type", resp.UserType).
			Str("token_user_type", string(claims.UserType)).
			Msg("login response role disagrees with token claim")
	}
	if user.UserType == "" {
		user.UserType = domain.UserType(resp.UserType)
	}

	metrics.CredentialRequestsTotal.WithLabelValues(endpointLogin, metrics.OutcomeSuccess).Inc()
	return &domain.Session{Token: resp.Token, User: user}, nil
}

// CreateAccount submits a registration. The response payload is kept opaque.
func (c *Client) CreateAccount(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error) {
	status, body, err := c.post(ctx, endpointRegister, "/auth/register", req)
	if err != nil {
		return nil, c.fail(endpointRegister, domain.MsgRegistrationFailed, status, body, err)
	}

	conf := &domain.Confirmation{}
	if len(bytes.TrimSpace(body)) > 0 {
		if !json.Valid(body) {
			return nil, c.malformed(endpointRegister, domain.MsgRegistrationFailed, status, errors.New("response is not JSON"))
		}
		conf.Raw = json.RawMessage(body)
		var m messageBody
		if json.Unmarshal(body, &m) == nil {
			conf.Message = m.Message
		}
	}

	metrics.CredentialRequestsTotal.WithLabelValues(endpointRegister, metrics.OutcomeSuccess).Inc()
	return conf, nil
}

// errStatus marks a request that got a non-2xx answer.
var errStatus = errors.New("unexpected status")

// post sends payload as JSON and returns the status and body. A non-2xx
// answer is reported as errStatus with the body still returned.
func (c *Client) post(ctx context.Context, endpoint, path string, payload any) (int, []byte, error) {
	start := time.Now()
	defer func() {
		metrics.CredentialRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, fmt.Errorf("%w %d", errStatus, resp.StatusCode)
	}
	return resp.StatusCode, body, nil
}

// fail builds the AuthError for a rejected or failed request. The server's
// message wins over the default.
func (c *Client) fail(endpoint, fallback string, status int, body []byte, cause error) error {
	outcome := metrics.OutcomeError
	if errors.Is(cause, errStatus) {
		outcome = metrics.OutcomeRejected
	}
	metrics.CredentialRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	msg := fallback
	var m messageBody
	if len(body) > 0 && json.Unmarshal(body, &m) == nil && strings.TrimSpace(m.Message) != "" {
		msg = m.Message
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Int("status", status).
		Str("outcome", outcome).
		Err(cause).
		Msg("credential request failed")

	return &domain.AuthError{Message: msg, StatusCode: status, Err: cause}
}

func (c *Client) malformed(endpoint, fallback string, status int, cause error) error {
	metrics.CredentialRequestsTotal.WithLabelValues(endpoint, metrics.OutcomeMalformed).Inc()
	c.log.Warn().
		Str("endpoint", endpoint).
		Int("status", status).
		Err(cause).
		Msg("malformed credential response")
	return &domain.AuthError{
		Message:    fallback,
		StatusCode: status,
		Err:        fmt.Errorf("%w: %w", domain.ErrMalformedResponse, cause),
	}
}
