package model

import "strings"

// Region is the client location that selects the VAT rate table.
// The wire spellings are the Portuguese ones used by the text store.
type Region string

const (
	RegionContinental Region = "Continente"
	RegionMadeira     Region = "Madeira"
	RegionAzores      Region = "Açores"
)

// Valid reports whether the region is one of the three known regions.
func (r Region) Valid() bool {
	switch r {
	case RegionContinental, RegionMadeira, RegionAzores:
		return true
	}
	return false
}

// ParseRegion parses a region spelling, case-insensitively. The accentless
// "Acores" is accepted alongside the canonical form.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continente", "continental":
		return RegionContinental, nil
	case "madeira":
		return RegionMadeira, nil
	case "açores", "acores", "azores":
		return RegionAzores, nil
	}
	return "", NewValidationError("region", s, "oneof", "region must be Continente, Madeira or Açores")
}

// TaxTier is the VAT tier of a food product. Pharmacy products carry no
// tier; their rate derives from prescription status instead.
type TaxTier string

const (
	TaxTierReduced      TaxTier = "Taxa reduzida"
	TaxTierIntermediate TaxTier = "Taxa intermédia"
	TaxTierNormal       TaxTier = "Taxa normal"
)

// Valid reports whether the tier is one of the three known tiers.
func (t TaxTier) Valid() bool {
	switch t {
	case TaxTierReduced, TaxTierIntermediate, TaxTierNormal:
		return true
	}
	return false
}

// ParseTaxTier parses a tier spelling, case-insensitively.
func ParseTaxTier(s string) (TaxTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "taxa reduzida", "reduzida":
		return TaxTierReduced, nil
	case "taxa intermédia", "taxa intermedia", "intermédia", "intermedia":
		return TaxTierIntermediate, nil
	case "taxa normal", "normal":
		return TaxTierNormal, nil
	}
	return "", NewValidationError("taxTier", s, "oneof", "tax tier must be Taxa reduzida, Taxa intermédia or Taxa normal")
}

// Food categories, meaningful only under the intermediate tier.
const (
	FoodCategoryFrozen = "congelados"
	FoodCategoryCanned = "enlatados"
	FoodCategoryWine   = "vinho"
)

// NormalizeFoodCategory maps a free-text food category onto its canonical
// spelling. Empty input stays empty.
func NormalizeFoodCategory(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "congelados", "frozen":
		return FoodCategoryFrozen, nil
	case "enlatados", "canned":
		return FoodCategoryCanned, nil
	case "vinho", "wine":
		return FoodCategoryWine, nil
	}
	return "", NewValidationError("category", s, "oneof", "food category must be congelados, enlatados or vinho")
}

// Pharmacy categories, required for products sold without prescription.
// The Portuguese spellings are the persisted ones.
const (
	PharmacyCategoryBeauty   = "Beleza"
	PharmacyCategoryWellness = "Bem-estar"
	PharmacyCategoryInfants  = "Bebês"
	PharmacyCategoryAnimals  = "Animais"
	PharmacyCategoryOther    = "Outro"
)

// NormalizePharmacyCategory maps a free-text pharmacy category onto its
// canonical spelling. English aliases are accepted.
func NormalizePharmacyCategory(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beleza", "beauty":
		return PharmacyCategoryBeauty, nil
	case "bem-estar", "wellness":
		return PharmacyCategoryWellness, nil
	case "bebês", "bebes", "infants":
		return PharmacyCategoryInfants, nil
	case "animais", "animals":
		return PharmacyCategoryAnimals, nil
	case "outro", "other":
		return PharmacyCategoryOther, nil
	}
	return "", NewValidationError("category", s, "oneof", "pharmacy category must be Beleza, Bem-estar, Bebês, Animais or Outro")
}

// Certifications accepted on reduced-tier food products.
var validCertifications = map[string]string{
	"iso22000":  "ISO22000",
	"fssc22000": "FSSC22000",
	"haccp":     "HACCP",
	"gmp":       "GMP",
}

// NormalizeCertification maps a certification name onto its canonical
// spelling.
func NormalizeCertification(s string) (string, error) {
	if c, ok := validCertifications[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", NewValidationError("certifications", s, "oneof", "certification must be ISO22000, FSSC22000, HACCP or GMP")
}
