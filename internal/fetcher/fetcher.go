package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Houeta/catalog-flow/internal/models"
)

const productsEndpoint = "/catalog/products"

// Client performs remote catalog requests and normalizes the varying
// payload shapes into the canonical models. One instance is safe for
// concurrent use.
type Client struct {
	log     *slog.Logger
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewClient creates a catalog API client. timeout bounds every single
// request; a request exceeding it fails with a transport error.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		client:  http.DefaultClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

// FetchPage performs one paged products request for the given filter and
// search term and returns the normalized page.
func (c *Client) FetchPage(
	ctx context.Context,
	filter models.Filter,
	searchTerm string,
	page, size int,
) (*models.PageResult, error) {
	const opn = "fetcher.FetchPage"

	query := filter.RemoteQuery(page, size, searchTerm)
	body, err := c.getJSON(ctx, productsEndpoint, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	result, err := c.decodePage(ctx, body, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	c.log.DebugContext(ctx, "Fetched catalog page",
		"op", opn, "page", page, "count", len(result.Products), "hasMore", result.HasMore)

	return result, nil
}

// FetchProduct retrieves a single product by id.
func (c *Client) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	const opn = "fetcher.FetchProduct"

	body, err := c.getJSON(ctx, productsEndpoint+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	product, err := decodeProduct(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, &Error{
			Kind:    KindParse,
			Message: "failed to parse product",
			Details: err.Error(),
		})
	}

	return &product, nil
}

// FetchCategories retrieves the list of category names. The consumer is
// expected to prepend "All" and deduplicate; the raw names are returned
// untouched.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	const opn = "fetcher.FetchCategories"

	body, err := c.getJSON(ctx, "/catalog/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var names []string
	if err = json.Unmarshal(body, &names); err == nil {
		return names, nil
	}

	var wrapped struct {
		Categories []string `json:"categories"`
	}
	if err = json.Unmarshal(body, &wrapped); err == nil && wrapped.Categories != nil {
		return wrapped.Categories, nil
	}

	return nil, fmt.Errorf("%s: %w", opn, &Error{
		Kind:    KindInvalidShape,
		Message: "no categories found in response",
	})
}

// FetchReviews retrieves the reviews of a product. A missing review
// sub-resource is an empty success, not an error.
func (c *Client) FetchReviews(ctx context.Context, productID string) ([]models.Review, error) {
	const opn = "fetcher.FetchReviews"

	endpoint := productsEndpoint + "/" + url.PathEscape(productID) + "/reviews"
	body, err := c.getJSON(ctx, endpoint, nil)
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) && fe.Kind == KindHTTPStatus && fe.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var reviews []models.Review
	if err = json.Unmarshal(body, &reviews); err == nil {
		return reviews, nil
	}

	var wrapped struct {
		Reviews []models.Review `json:"reviews"`
	}
	if err = json.Unmarshal(body, &wrapped); err == nil {
		return wrapped.Reviews, nil
	}

	return nil, fmt.Errorf("%s: %w", opn, &Error{
		Kind:    KindInvalidShape,
		Message: "no reviews found in response",
	})
}

// getJSON performs one bounded GET request and returns the raw body of a
// 2xx response. Every failure comes back as a typed *Error.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqURL, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Message: "invalid request URL", Details: err.Error()}
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Message: "failed to build request", Details: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL.Redacted())

	res, err := c.client.Do(req)
	if err != nil {
		msg := "request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		return nil, &Error{Kind: KindTransport, Message: msg, Details: err.Error()}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to read response body", Details: err.Error()}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		httpErr := &Error{
			Kind:       KindHTTPStatus,
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("HTTP error %d", res.StatusCode),
		}
		var serverErr apiErrorBody
		if jsonErr := json.Unmarshal(body, &serverErr); jsonErr == nil && serverErr.Message != "" {
			httpErr.Message = serverErr.Message
			httpErr.Details = serverErr.Details
		} else {
			httpErr.Details = string(body)
		}
		return nil, httpErr
	}

	return body, nil
}
