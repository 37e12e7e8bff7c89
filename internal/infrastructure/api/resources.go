package api

import (
	"context"
	"net/http"
)

// Property is one managed unit as listed by the backend. The client treats
// the payload as read-only display data; business rules live server-side.
type Property struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	OwnerID   string   `json:"owner_id,omitempty"`
	Rent      float64  `json:"rent,omitempty"`
	Currency  string   `json:"currency,omitempty"`
	Occupied  bool     `json:"occupied"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// Properties lists the properties visible to the current account. Requires
// a manager or owner session; tenants receive a 403 from the server.
func (c *Client) Properties(ctx context.Context) ([]Property, error) {
	var out []Property
	if err := c.Do(ctx, http.MethodGet, "/properties", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
