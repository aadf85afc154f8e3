// offers/models.go
package offers

import "github.com/google/uuid"

// Product is a product registered with the Offers service.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Offer is one seller's price for a product.
type Offer struct {
	ID           uuid.UUID `json:"id"`
	Price        int       `json:"price"`
	ItemsInStock int       `json:"items_in_stock"`
}

// registerProductRequest is the body of POST /products/register.
type registerProductRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// registerProductResponse holds the part of the registration answer the client relies on.
type registerProductResponse struct {
	ID uuid.UUID `json:"id"`
}
