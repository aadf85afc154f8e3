// offers/client.go
/* Package offers registers products with the Offers service and lists the offers made for them.
All calls go through httpclient.Client, which supplies authentication and the 401 retry. */
package offers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/deploymenttheory/go-api-offers-client/httpclient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	uriRegisterProduct = "/products/register"
	uriProductOffers   = "/products/%s/offers"
)

// ErrEmptyProductID is returned by GetOffers when no product ID is given.
var ErrEmptyProductID = errors.New("product id must not be empty")

// Client exposes the Offers business endpoints.
type Client struct {
	http    *httpclient.Client
	baseURL string
	newID   func() uuid.UUID
}

// NewClient wraps c. An empty baseURL uses the one c was configured with.
func NewClient(c *httpclient.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = c.BaseURL()
	}
	return &Client{
		http:    c,
		baseURL: strings.TrimRight(baseURL, "/"),
		newID:   uuid.New,
	}
}

// RegisterProduct registers a product under a freshly generated ID. The returned Product carries the
// ID from the service's answer and the name and description as passed in.
func (c *Client) RegisterProduct(ctx context.Context, name, description string) (Product, error) {
	productID := c.newID()
	endpoint := c.baseURL + uriRegisterProduct

	request := registerProductRequest{
		ID:          productID.String(),
		Name:        name,
		Description: description,
	}

	var registered registerProductResponse
	if err := c.http.DoRequestInto(ctx, http.MethodPost, endpoint, request, &registered); err != nil {
		return Product{}, fmt.Errorf("failed to register product %q: %w", name, err)
	}

	if registered.ID == uuid.Nil {
		return Product{}, c.http.Logger.Error("Product registration response did not contain an id", zap.String("product_id", productID.String()))
	}

	c.http.Logger.Info("Registered product", zap.String("product_id", registered.ID.String()), zap.String("name", name))

	return Product{
		ID:          registered.ID,
		Name:        name,
		Description: description,
	}, nil
}

// GetOffers lists the current offers for productID.
func (c *Client) GetOffers(ctx context.Context, productID string) ([]Offer, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, ErrEmptyProductID
	}

	endpoint := c.baseURL + fmt.Sprintf(uriProductOffers, url.PathEscape(productID))

	var offers []Offer
	if err := c.http.DoRequestInto(ctx, http.MethodGet, endpoint, nil, &offers); err != nil {
		return nil, fmt.Errorf("failed to fetch offers for product %s: %w", productID, err)
	}

	if offers == nil {
		offers = []Offer{}
	}

	c.http.Logger.Debug("Fetched offers", zap.String("product_id", productID), zap.Int("count", len(offers)))

	return offers, nil
}
