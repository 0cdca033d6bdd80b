// Package client talks to the back-office HTTP API and drives the product and
// promotion forms on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smallbiznis/backoffice/internal/auth/session"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	promotiondomain "github.com/smallbiznis/backoffice/internal/promotion/domain"
	uploaddomain "github.com/smallbiznis/backoffice/internal/upload/domain"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// categoryPageSize is large enough to fill a category picker in one request.
const categoryPageSize = 250

type Client struct {
	baseURL      string
	http         *http.Client
	sessionToken string
	log          *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithSessionToken sends token as the session cookie on every request.
func WithSessionToken(token string) Option {
	return func(c *Client) {
		c.sessionToken = strings.TrimSpace(token)
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("backoffice.client")
	return c
}

// APIError is a non-2xx response. Message carries the envelope's message or
// error text; Fields carries per-field validation messages when present.
type APIError struct {
	Status  int
	Message string
	Details string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// ProductRequest is the create payload; Image nil means no image.
type ProductRequest struct {
	NameEn     string  `json:"nameEn"`
	NameKh     string  `json:"nameKh"`
	CategoryID string  `json:"categoryId"`
	SKU        string  `json:"sku"`
	Image      *string `json:"image"`
}

// File is an asset selected for upload.
type File struct {
	Name string
	Body io.Reader
}

func (c *Client) ListCategories(ctx context.Context) ([]categorydomain.Response, error) {
	query := url.Values{}
	query.Set("pageSize", fmt.Sprint(categoryPageSize))

	var env struct {
		Data []categorydomain.Response `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/category?"+query.Encode(), nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*productdomain.Response, error) {
	var env struct {
		Data *productdomain.Response `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/product", req, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New("product response missing data")
	}
	return env.Data, nil
}

func (c *Client) GetPromotion(ctx context.Context, id string) (*promotiondomain.Response, error) {
	var env struct {
		Data *promotiondomain.Response `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/promotion/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New("promotion response missing data")
	}
	return env.Data, nil
}

func (c *Client) UpdatePromotion(ctx context.Context, id string, in promotiondomain.Input) (*promotiondomain.Response, error) {
	var env struct {
		Data *promotiondomain.Response `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/promotion/"+url.PathEscape(id), in, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) DeletePromotion(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/promotion/"+url.PathEscape(id), nil, nil)
}

// Upload posts file as multipart under field.
func (c *Client) Upload(ctx context.Context, field string, file File) (*uploaddomain.Result, error) {
	if file.Body == nil {
		return nil, uploaddomain.ErrEmptyFile
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res uploaddomain.Result
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: c.sessionToken})
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeAPIError(resp.StatusCode, raw)
		c.log.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// decodeAPIError understands the resource envelopes ({message}, {error,
// details}, {message, errors}) and the structured {error:{type,message}} one.
// Bodies that are not JSON become the message verbatim.
func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var env struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Details json.RawMessage `json:"details"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Message = env.Message
	if len(env.Error) > 0 {
		var text string
		var structured struct {
			Message string `json:"message"`
		}
		switch {
		case json.Unmarshal(env.Error, &text) == nil:
			if apiErr.Message == "" {
				apiErr.Message = text
			}
		case json.Unmarshal(env.Error, &structured) == nil:
			if apiErr.Message == "" {
				apiErr.Message = structured.Message
			}
		}
	}
	if len(env.Details) > 0 {
		var details string
		if json.Unmarshal(env.Details, &details) == nil {
			apiErr.Details = details
		} else {
			apiErr.Details = string(env.Details)
		}
	}
	if len(env.Errors) > 0 {
		var fields map[string]string
		if json.Unmarshal(env.Errors, &fields) == nil {
			apiErr.Fields = fields
		}
	}
	return apiErr
}
