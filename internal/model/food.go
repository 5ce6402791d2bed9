package model

import (
	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/money"
)

// FoodProduct is a food line item. Its VAT rate comes from the region×tier
// table, then organic, certification and wine adjustments apply.
//
// The tier constrains the other fields: reduced-tier products carry 1 to 4
// certifications and no category, intermediate-tier products carry a
// category (congelados, enlatados or vinho) and no certifications, and
// normal-tier products carry neither.
type FoodProduct struct {
	baseProduct
	taxTier        TaxTier
	organic        bool
	certifications []string
	category       string
}

// NewFoodProduct creates a validated food product. The certification and
// category rules depend on the tier, see the type comment.
func NewFoodProduct(code, name, description string, unitPrice decimal.Decimal, quantity int,
	tier TaxTier, organic bool, certifications []string, category string) (*FoodProduct, error) {

	p := &FoodProduct{}
	if err := p.init(code, name, description, unitPrice, quantity); err != nil {
		return nil, err
	}
	if !tier.Valid() {
		return nil, NewValidationError("taxTier", string(tier), "oneof", "tax tier must be Taxa reduzida, Taxa intermédia or Taxa normal")
	}
	p.taxTier = tier
	p.organic = organic
	if err := p.SetCertifications(certifications); err != nil {
		return nil, err
	}
	if err := p.SetCategory(category); err != nil {
		return nil, err
	}
	return p, nil
}

// Type returns the food discriminator.
func (p *FoodProduct) Type() ProductType { return ProductTypeFood }

// TaxTier returns the stored tier.
func (p *FoodProduct) TaxTier() TaxTier { return p.taxTier }

// RequiresTaxTier is always true for food products.
func (p *FoodProduct) RequiresTaxTier() bool { return true }

// Organic reports whether the product is organically produced.
func (p *FoodProduct) Organic() bool { return p.organic }

// SetOrganic toggles the organic flag.
func (p *FoodProduct) SetOrganic(organic bool) { p.organic = organic }

// Certifications returns a copy of the certification list, in order.
func (p *FoodProduct) Certifications() []string {
	out := make([]string, len(p.certifications))
	copy(out, p.certifications)
	return out
}

// SetCertifications replaces the certification list. Under the reduced
// tier the list must hold 1 to 4 known certifications; under the other
// tiers certifications are cleared.
func (p *FoodProduct) SetCertifications(certifications []string) error {
	if p.taxTier != TaxTierReduced {
		p.certifications = nil
		return nil
	}
	if len(certifications) < 1 || len(certifications) > 4 {
		return NewValidationError("certifications", len(certifications), "range",
			"reduced-tier products must have between 1 and 4 certifications")
	}
	normalized := make([]string, 0, len(certifications))
	for _, c := range certifications {
		n, err := NormalizeCertification(c)
		if err != nil {
			return err
		}
		normalized = append(normalized, n)
	}
	p.certifications = normalized
	return nil
}

// Category returns the food category, empty outside the intermediate tier.
func (p *FoodProduct) Category() string { return p.category }

// SetCategory sets the category. Intermediate-tier products require one of
// the known categories; reduced-tier products drop it; normal-tier products
// must not have one.
func (p *FoodProduct) SetCategory(category string) error {
	switch p.taxTier {
	case TaxTierReduced:
		p.category = ""
	case TaxTierIntermediate:
		normalized, err := NormalizeFoodCategory(category)
		if err != nil {
			return err
		}
		if normalized == "" {
			return NewValidationError("category", category, "required",
				"intermediate-tier products require a category")
		}
		p.category = normalized
	case TaxTierNormal:
		normalized, err := NormalizeFoodCategory(category)
		if err != nil {
			return err
		}
		if normalized != "" {
			return NewValidationError("category", category, "excluded",
				"normal-tier products must not have a category")
		}
		p.category = ""
	}
	return nil
}

// CalculateTax computes the line VAT amount for the given region.
//
// The adjustment order is part of the contract: the organic discount is
// proportional and shrinks the base rate first, then the flat
// percentage-point shifts apply (−1 for four certifications, +1 for wine).
// The rate is clamped at zero.
func (p *FoodProduct) CalculateTax(region Region) (decimal.Decimal, error) {
	tiers, ok := foodBaseRates[region]
	if !ok {
		return decimal.Zero, NewValidationError("region", string(region), "oneof",
			"region must be Continente, Madeira or Açores")
	}
	rate := money.FromInt(tiers[p.taxTier])

	if p.organic {
		rate = rate.Mul(organicDiscount)
	}
	if len(p.certifications) == 4 {
		rate = rate.Sub(onePoint)
	}
	if p.category == FoodCategoryWine {
		rate = rate.Add(onePoint)
	}

	return money.Percent(p.lineSubtotal(), money.ClampZero(rate)), nil
}
