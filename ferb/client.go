package ferb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmdatafocus/intake_backend/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("intake-ferb")

// Client talks to the FERB API on behalf of the worker whose token is on
// the request context.
type Client struct {
	baseURL string
	http    *http.Client
	limiter <-chan time.Time
}

func NewClient() (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv("FERB_API_URL"))
	if baseURL == "" {
		return nil, errors.New("FERB_API_URL is empty")
	}
	timeout := 30 * time.Second
	if v := strings.TrimSpace(os.Getenv("FERB_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	c := NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
	if v := strings.TrimSpace(os.Getenv("FERB_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.limiter = time.Tick(time.Minute / time.Duration(n))
		}
	}
	return c, nil
}

// NewClientWithHTTP builds an unthrottled client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	select {
	case <-c.limiter:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// do sends one request. Any failure is returned as *APIError; out is
// decoded only on a 2xx response with a body.
func (c *Client) do(ctx context.Context, method, path string, in any, out any) (err error) {
	ctx, span := tracer.Start(ctx, "ferb "+method, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("ferb.path", path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := c.wait(ctx); err != nil {
		return &APIError{Status: http.StatusServiceUnavailable, Err: err}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &APIError{Status: http.StatusBadRequest, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Status: http.StatusBadRequest, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := utils.GetTokenFromContext(ctx); ok && token != "" {
		req.Header.Set("Authorization", token)
	}
	if correlationId, ok := utils.GetCorrelationIdFromContext(ctx); ok && correlationId != "" {
		req.Header.Set("X-Correlation-ID", correlationId)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Status: http.StatusBadGateway, Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: respBody}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Status: http.StatusBadGateway, Body: respBody, Err: err}
	}
	return nil
}
