package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
)

// Client talks to the storefront backend: the catalog fetch service
// and the order submission service. Transport failures surface as
// NetworkError, remote rejections of an order as ValidationError.
type Client struct {
	baseURL string
	cdnURL  string
	http    *http.Client
	sfg     singleflight.Group // collapses concurrent catalog fetches
	breaker *gobreaker.CircuitBreaker[*domain.OrderResult]
}

func NewClient(baseURL, cdnURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name: "order-submit",
		// remote validation rejections are not a service fault and must
		// not trip the breaker
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var validation *domain.ValidationError
			return errors.As(err, &validation)
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cdnURL:  strings.TrimRight(cdnURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*domain.OrderResult](settings),
	}
}

type listResponse struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// ListProducts fetches the full catalog. Concurrent calls share a
// single request.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("product-list", func() (interface{}, error) {
		var list listResponse
		if err := c.get(ctx, "/product", &list); err != nil {
			return nil, err
		}
		for i := range list.Items {
			list.Items[i].Image = c.withCDN(list.Items[i].Image)
		}
		return list.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// GetProduct fetches a single product with its full description.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/product/"+id, &p); err != nil {
		return nil, err
	}
	p.Image = c.withCDN(p.Image)
	return &p, nil
}

// SubmitOrder posts the order snapshot. The call runs through a
// circuit breaker; an open breaker surfaces as NetworkError.
func (c *Client) SubmitOrder(ctx context.Context, snapshot domain.OrderSnapshot) (*domain.OrderResult, error) {
	result, err := c.breaker.Execute(func() (*domain.OrderResult, error) {
		return c.postOrder(ctx, snapshot)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.NetworkError{Op: "POST /order", Err: err}
		}
		return nil, err
	}
	return result, nil
}

func (c *Client) postOrder(ctx context.Context, snapshot domain.OrderSnapshot) (*domain.OrderResult, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: "POST /order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var remote errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
			return nil, &domain.ValidationError{Message: "order rejected by the order service"}
		}
		return nil, &domain.ValidationError{Field: domain.Field(remote.Field), Message: remote.Error}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &domain.NetworkError{Op: "POST /order", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result domain.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.NetworkError{Op: "POST /order", Err: err}
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.NetworkError{Op: "GET " + path, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.NetworkError{Op: "GET " + path, Err: err}
	}
	return nil
}

// withCDN resolves a relative image path against the CDN base URL,
// the way the original catalog service serves images.
func (c *Client) withCDN(image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	if !strings.HasPrefix(image, "/") {
		image = "/" + image
	}
	return c.cdnURL + image
}
