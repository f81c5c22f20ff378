package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// APIClient wraps Hertz Client for HTTP communication with the admin API.
// Credentials are fixed for the lifetime of the client.
type APIClient struct {
	client *client.Client
	server string
	creds  types.Credentials
	logger *slog.Logger
}

// NewAPIClient creates a new API client
func NewAPIClient(server string, creds types.Credentials) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
		creds:  creds,
		logger: slog.Default().With("component", "api-client"),
	}, nil
}

// SetLogger replaces the client's logger
func (c *APIClient) SetLogger(logger *slog.Logger) {
	c.logger = logger.With("component", "api-client")
}

// Server returns the normalized server address
func (c *APIClient) Server() string {
	return c.server
}

// normalizeServerURL normalizes server URL to ensure it has a scheme and no trailing slash
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

type requestIDKey struct{}

// WithRequestID attaches the request ID sent as X-Request-ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// envelope is implemented by every REST response type
type envelope interface {
	Succeeded() (bool, string)
}

// Login performs operator login. It is the only call made without credentials.
func (c *APIClient) Login(ctx context.Context, username, password string) (*types.LoginResponse, error) {
	const op = "login"

	bodyBytes, err := sonic.Marshal(types.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointLogin)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := c.send(ctx, op, req, resp); err != nil {
		return nil, err
	}

	var loginResp types.LoginResponse
	if err := decodeEnvelope(op, resp.Body(), &loginResp); err != nil {
		return nil, err
	}
	if loginResp.Token == "" {
		return nil, domain.NewProtocolError(op, "server returned no token")
	}

	return &loginResp, nil
}

// getJSON issues an authenticated GET and decodes the success envelope into out
func (c *APIClient) getJSON(ctx context.Context, op, path string, query url.Values, out envelope) error {
	if err := c.requireCredentials(op); err != nil {
		return err
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	uri := c.server + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(uri)
	req.Header.Set("Authorization", c.creds.Authorization())

	if err := c.send(ctx, op, req, resp); err != nil {
		return err
	}

	return decodeEnvelope(op, resp.Body(), out)
}

func (c *APIClient) requireCredentials(op string) error {
	if !c.creds.Valid() {
		return domain.NewUnauthorizedError(fmt.Sprintf("%s: not authenticated, run 'ragarctl login' first", op))
	}
	return nil
}

// send executes the request and maps transport and HTTP failures onto the error taxonomy
func (c *APIClient) send(ctx context.Context, op string, req *protocol.Request, resp *protocol.Response) error {
	id := requestID(ctx)
	req.Header.Set("X-Request-ID", id)

	if err := ctx.Err(); err != nil {
		return domain.NewTransportError(op, err)
	}

	// Do ignores the context deadline, so bound the call explicitly.
	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(ctx, req, resp, deadline)
	} else {
		err = c.client.Do(ctx, req, resp)
	}
	logger := c.logger.With("op", op, "request_id", id, "elapsed", time.Since(start))
	if err != nil {
		logger.Warn("request failed", "error", err)
		return domain.NewTransportError(op, err)
	}

	statusCode := resp.StatusCode()
	logger.Debug("request completed", "status", statusCode)

	switch {
	case statusCode == consts.StatusUnauthorized || statusCode == consts.StatusForbidden:
		return domain.NewUnauthorizedError(fmt.Sprintf("%s: server rejected credentials (HTTP %d)", op, statusCode))
	case statusCode < 200 || statusCode >= 300:
		msg := fmt.Sprintf("HTTP %d", statusCode)
		var env types.Envelope
		if sonic.Unmarshal(resp.Body(), &env) == nil && env.Error != "" {
			msg = fmt.Sprintf("%s (HTTP %d)", env.Error, statusCode)
		}
		return domain.NewProtocolError(op, msg)
	}

	return nil
}

// decodeEnvelope parses a REST body and rejects success=false envelopes
func decodeEnvelope(op string, body []byte, out envelope) error {
	if err := sonic.Unmarshal(body, out); err != nil {
		return domain.NewProtocolError(op, fmt.Sprintf("malformed response: %v", err))
	}
	if ok, msg := out.Succeeded(); !ok {
		return domain.NewProtocolError(op, msg)
	}
	return nil
}
