package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/money"
)

// ProductType discriminates the two product variants on the wire.
type ProductType string

const (
	ProductTypeFood     ProductType = "Alimentar"
	ProductTypePharmacy ProductType = "Farmacia"
)

// Product is a taxable invoice line. The two concrete variants are
// FoodProduct and PharmacyProduct; no further variants are anticipated, so
// consumers may type-switch over them.
type Product interface {
	Code() string
	Name() string
	Description() string
	UnitPrice() decimal.Decimal
	Quantity() int

	// Type returns the variant discriminator.
	Type() ProductType

	// TaxTier returns the stored tier, empty for variants that do not
	// require one.
	TaxTier() TaxTier

	// RequiresTaxTier reports whether the variant stores a tax tier.
	RequiresTaxTier() bool

	// Category returns the variant category, empty when not set.
	Category() string

	// CalculateTax returns the quantity-scaled VAT amount for the line,
	// in currency units. Unknown regions are an error, never defaulted.
	CalculateTax(region Region) (decimal.Decimal, error)
}

// baseProduct carries the fields common to all variants.
type baseProduct struct {
	code        string
	name        string
	description string
	unitPrice   decimal.Decimal
	quantity    int
}

func (p *baseProduct) Code() string { return p.code }
func (p *baseProduct) Name() string { return p.name }
func (p *baseProduct) Description() string { return p.description }
func (p *baseProduct) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p *baseProduct) Quantity() int { return p.quantity }

func (p *baseProduct) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return NewValidationError("code", code, "required", "product code must not be empty")
	}
	p.code = code
	return nil
}

func (p *baseProduct) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", name, "required", "product name must not be empty")
	}
	p.name = name
	return nil
}

func (p *baseProduct) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return NewValidationError("description", description, "required", "product description must not be empty")
	}
	p.description = description
	return nil
}

// SetUnitPrice sets the unit price, which must be greater than zero.
func (p *baseProduct) SetUnitPrice(price decimal.Decimal) error {
	if !money.IsPositive(price) {
		return NewValidationError("unitPrice", price.String(), "gt", "unit price must be greater than zero")
	}
	p.unitPrice = price
	return nil
}

// SetQuantity sets the quantity, which must be non-negative.
func (p *baseProduct) SetQuantity(quantity int) error {
	if quantity < 0 {
		return NewValidationError("quantity", quantity, "gte", "quantity must be zero or greater")
	}
	p.quantity = quantity
	return nil
}

func (p *baseProduct) init(code, name, description string, unitPrice decimal.Decimal, quantity int) error {
	if err := p.setCode(code); err != nil {
		return err
	}
	if err := p.setName(name); err != nil {
		return err
	}
	if err := p.setDescription(description); err != nil {
		return err
	}
	if err := p.SetUnitPrice(unitPrice); err != nil {
		return err
	}
	return p.SetQuantity(quantity)
}

// lineSubtotal is unitPrice × quantity, the ex-VAT amount of the line.
func (p *baseProduct) lineSubtotal() decimal.Decimal {
	return p.unitPrice.Mul(decimal.NewFromInt(int64(p.quantity)))
}
