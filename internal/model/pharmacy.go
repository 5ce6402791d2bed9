package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/money"
)

// PharmacyProduct is a pharmacy line item. It stores no tax tier; the rate
// derives from prescription status. Prescribed products carry the name of
// the prescribing doctor, non-prescribed ones carry a category; exactly
// one of the two is set.
type PharmacyProduct struct {
	baseProduct
	prescribed bool
	doctor     string
	category   string
}

// NewPharmacyProduct creates a validated pharmacy product. When prescribed
// is true the doctor name is required and the category must be empty; when
// false the category is required and validated, and the doctor must be
// empty.
func NewPharmacyProduct(code, name, description string, unitPrice decimal.Decimal, quantity int,
	prescribed bool, doctor, category string) (*PharmacyProduct, error) {

	p := &PharmacyProduct{}
	if err := p.init(code, name, description, unitPrice, quantity); err != nil {
		return nil, err
	}
	p.prescribed = prescribed
	if prescribed {
		if err := p.SetDoctor(doctor); err != nil {
			return nil, err
		}
	} else {
		if strings.TrimSpace(doctor) != "" {
			return nil, NewValidationError("prescribingDoctor", doctor, "excluded",
				"non-prescribed products must not name a doctor")
		}
		if err := p.SetCategory(category); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Type returns the pharmacy discriminator.
func (p *PharmacyProduct) Type() ProductType { return ProductTypePharmacy }

// TaxTier is always empty: pharmacy products store no tier.
func (p *PharmacyProduct) TaxTier() TaxTier { return "" }

// RequiresTaxTier is always false for pharmacy products.
func (p *PharmacyProduct) RequiresTaxTier() bool { return false }

// RequiresPrescription reports whether the product needs a prescription.
func (p *PharmacyProduct) RequiresPrescription() bool { return p.prescribed }

// PrescribingDoctor returns the doctor name, empty when not prescribed.
func (p *PharmacyProduct) PrescribingDoctor() string { return p.doctor }

// SetDoctor sets the prescribing doctor. Only valid on prescribed products.
func (p *PharmacyProduct) SetDoctor(doctor string) error {
	if !p.prescribed {
		return NewValidationError("prescribingDoctor", doctor, "excluded",
			"non-prescribed products must not name a doctor")
	}
	doctor = strings.TrimSpace(doctor)
	if doctor == "" {
		return NewValidationError("prescribingDoctor", doctor, "required",
			"prescribed products require the prescribing doctor")
	}
	p.doctor = doctor
	p.category = ""
	return nil
}

// Category returns the pharmacy category, empty when prescribed.
func (p *PharmacyProduct) Category() string { return p.category }

// SetCategory sets the category. Only valid on non-prescribed products.
func (p *PharmacyProduct) SetCategory(category string) error {
	if p.prescribed {
		return NewValidationError("category", category, "excluded",
			"prescribed products must not have a category")
	}
	normalized, err := NormalizePharmacyCategory(category)
	if err != nil {
		return err
	}
	p.category = normalized
	p.doctor = ""
	return nil
}

// CalculateTax computes the line VAT amount for the given region.
// Prescribed products use the reduced regional rate, others the flat
// standard rate with a one-point discount for the Animais category.
func (p *PharmacyProduct) CalculateTax(region Region) (decimal.Decimal, error) {
	if !region.Valid() {
		return decimal.Zero, NewValidationError("region", string(region), "oneof",
			"region must be Continente, Madeira or Açores")
	}

	var rate decimal.Decimal
	if p.prescribed {
		rate = money.FromInt(pharmacyPrescribedRates[region])
	} else {
		rate = money.FromInt(pharmacyStandardRate)
		if strings.EqualFold(p.category, PharmacyCategoryAnimals) {
			rate = rate.Sub(onePoint)
		}
	}

	return money.Percent(p.lineSubtotal(), money.ClampZero(rate)), nil
}
