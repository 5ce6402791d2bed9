package model

import "strings"

// Client is a billable party: a name, a region that selects the VAT rate
// table, and a four-digit tax ID that identifies the client in the ledger.
// Fields only change through setters, which re-validate.
type Client struct {
	name   string
	region Region
	taxID  int
}

// NewClient creates a validated client.
func NewClient(name string, region Region, taxID int) (*Client, error) {
	c := &Client{}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetRegion(region); err != nil {
		return nil, err
	}
	if err := c.SetTaxID(taxID); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the client name.
func (c *Client) Name() string { return c.name }

// Region returns the client region.
func (c *Client) Region() Region { return c.region }

// TaxID returns the client tax ID.
func (c *Client) TaxID() int { return c.taxID }

// SetName sets the client name. It must be non-empty after trimming.
func (c *Client) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", name, "required", "client name must not be empty")
	}
	c.name = name
	return nil
}

// SetRegion sets the client region.
func (c *Client) SetRegion(region Region) error {
	if !region.Valid() {
		return NewValidationError("region", string(region), "oneof", "region must be Continente, Madeira or Açores")
	}
	c.region = region
	return nil
}

// SetTaxID sets the tax ID. It must have exactly four digits.
func (c *Client) SetTaxID(taxID int) error {
	if taxID < 1000 || taxID > 9999 {
		return NewValidationError("taxId", taxID, "range", "tax ID must have exactly 4 digits")
	}
	c.taxID = taxID
	return nil
}
