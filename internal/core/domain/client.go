package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a tenant: an organization whose users and visits form an
// isolation boundary for CLIENT_ADMIN and TECHNICIAN accounts.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientSummary is the subset of Client embedded in user-facing responses.
type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) Summary() *ClientSummary {
	if c == nil {
		return nil
	}
	return &ClientSummary{ID: c.ID, Name: c.Name}
}
