// Package viacep looks up Brazilian postal codes for address autofill.
// Lookup failures are non-fatal by contract: the form stays editable and the
// broker types the address by hand.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

const DefaultBaseURL = "https://viacep.com.br"

var (
	ErrInvalidCEP = errors.New("postal code must be 8 digits")
	ErrNotFound   = errors.New("postal code not found")
)

var reCEP = regexp.MustCompile(`^\d{8}$`)

// Address is the autofill payload for a postal code.
type Address struct {
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client against baseURL; empty means the public service.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// viaCEP replies 200 with {"erro": true} for unknown codes.
type viaCEPResponse struct {
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`
	NotFound bool   `json:"erro"`
}

func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	if !reCEP.MatchString(cep) {
		return nil, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build viacep request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep: unexpected status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("viacep: decode: %w", err)
	}
	if body.NotFound {
		return nil, ErrNotFound
	}
	return &Address{
		Street:   body.Street,
		District: body.District,
		City:     body.City,
		State:    body.State,
	}, nil
}
