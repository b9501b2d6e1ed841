package agencyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AgencyAPI is the remote Spy Cat Agency service.
type AgencyAPI interface {
	ListCats(ctx context.Context) ([]models.Cat, error)
	CreateCat(ctx context.Context, cat models.CatCreate) (models.Cat, error)
	UpdateCat(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error)
	DeleteCat(ctx context.Context, id int64) error
	CompleteTarget(ctx context.Context, targetId int64) error
}

// Operation names used for tracing and metrics.
const (
	OpListCats       = "list_cats"
	OpCreateCat      = "create_cat"
	OpUpdateCat      = "update_cat"
	OpDeleteCat      = "delete_cat"
	OpCompleteTarget = "complete_target"
)

// ObserveFunc is called once per upstream call with the outcome label
// ("ok", "http_error" or "transport_error").
type ObserveFunc func(op, outcome string, elapsed time.Duration)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	observe    ObserveFunc
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithObserver(fn ObserveFunc) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// HTTPError is returned for any non-2xx response. Detail is the
// server-supplied message and may be empty.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// DetailOf returns the server-supplied detail carried by err, if any.
func DetailOf(err error) (string, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Detail != "" {
		return httpErr.Detail, true
	}
	return "", false
}

func NewAgencyAPIClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.Tracer("spy-cat-console/agencyapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListCats(ctx context.Context) ([]models.Cat, error) {
	var cats []models.Cat
	if err := c.do(ctx, OpListCats, http.MethodGet, "/cats/", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) CreateCat(ctx context.Context, cat models.CatCreate) (models.Cat, error) {
	var created models.Cat
	if err := c.do(ctx, OpCreateCat, http.MethodPost, "/cats/", cat, &created); err != nil {
		return models.Cat{}, err
	}
	return created, nil
}

func (c *Client) UpdateCat(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error) {
	var updated models.Cat
	path := "/cats/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, OpUpdateCat, http.MethodPut, path, update, &updated); err != nil {
		return models.Cat{}, err
	}
	return updated, nil
}

func (c *Client) DeleteCat(ctx context.Context, id int64) error {
	path := "/cats/" + strconv.FormatInt(id, 10)
	return c.do(ctx, OpDeleteCat, http.MethodDelete, path, nil, nil)
}

func (c *Client) CompleteTarget(ctx context.Context, targetId int64) error {
	path := "/targets/" + strconv.FormatInt(targetId, 10) + "/complete"
	return c.do(ctx, OpCompleteTarget, http.MethodPost, path, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "agencyapi."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	))
	start := time.Now()
	defer func() {
		outcome := "ok"
		var httpErr *HTTPError
		switch {
		case errors.As(err, &httpErr):
			outcome = "http_error"
			span.SetAttributes(attribute.Int("http.status_code", httpErr.StatusCode))
		case err != nil:
			outcome = "transport_error"
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if c.observe != nil {
			c.observe(op, outcome, time.Since(start))
		}
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to the api failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &HTTPError{
			StatusCode: response.StatusCode,
			Detail:     parseDetail(response.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseDetail reads {"detail": ...} where detail is either a string or a list
// of validation errors carrying "msg". Anything else yields "".
func parseDetail(r io.Reader) string {
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
