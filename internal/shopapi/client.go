package shopapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shop_companion/internal/cart"
	"shop_companion/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.shop-companion.kr/v1"

var (
	ErrMissingToken = errors.New("api token is required")
	ErrUnauthorized = errors.New("shop api unauthorized")
	ErrRateLimited  = errors.New("shop api rate limited")
	ErrNotFound     = errors.New("shop api resource not found")
)

type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("shop api error: %s", e.Status)
	}
	return fmt.Sprintf("shop api error: %s: %s", e.Status, e.Body)
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.APIBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	if token := strings.TrimSpace(cfg.APIToken); token != "" {
		httpClient.SetAuthScheme("Bearer")
		httpClient.SetAuthToken(token)
	}

	return &Client{
		http:   httpClient,
		logger: logger.Named("shopapi"),
	}
}

func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.http.Token) != ""
}

// GetCart fetches the current cart snapshot grouped by store.
func (c *Client) GetCart(ctx context.Context) (cart.Cart, error) {
	if !c.Configured() {
		return nil, ErrMissingToken
	}

	var resp envelope[cart.Cart]
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &resp); err != nil {
		return nil, err
	}
	c.logger.Debug("cart fetched", zap.Int("stores", len(resp.Data)))
	return resp.Data, nil
}

// UpdateCartItemQuantity stores an absolute quantity for one cart line.
func (c *Client) UpdateCartItemQuantity(ctx context.Context, cartItemIdx int64, quantity int) error {
	if !c.Configured() {
		return ErrMissingToken
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	path := "/cart/items/" + strconv.FormatInt(cartItemIdx, 10)
	return c.do(ctx, http.MethodPatch, path, nil, quantityRequest{Quantity: quantity}, nil)
}

// ListNearbyStores returns stores within radius meters of the given point,
// in whatever order the API chooses.
func (c *Client) ListNearbyStores(ctx context.Context, latitude, longitude float64, radius int) ([]Store, error) {
	if !c.Configured() {
		return nil, ErrMissingToken
	}

	query := map[string]string{
		"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
	}
	if radius > 0 {
		query["radius"] = strconv.Itoa(radius)
	}

	var resp envelope[[]Store]
	if err := c.do(ctx, http.MethodGet, "/stores/nearby", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result any) error {
	// Upstream gateways do not always label JSON bodies, and resty only
	// decodes results for a JSON content type.
	req := c.http.R().SetContext(ctx).ForceContentType("application/json")
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("shop api request: %w", err)
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}
	return nil
}

func apiErrorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       strings.TrimSpace(resp.String()),
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error())
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Error())
	default:
		return apiErr
	}
}
