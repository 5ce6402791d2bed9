package codec

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/money"
)

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := money.FromString(s)
	if err != nil {
		return decimal.Zero, model.NewValidationError("unitPrice", s, "numeric", "invalid unit price")
	}
	return d, nil
}

// variantCodec decodes and encodes the variant-specific tail of a product
// record. Records share seven positional fields (code, name, description,
// type, unit price, quantity, category) followed by two variant fields.
type variantCodec interface {
	// canDecode reports whether this codec handles the type discriminator.
	canDecode(tag string) bool

	// handles reports whether this codec encodes the given product.
	handles(p model.Product) bool

	// decode builds a product from a full field slice (len >= 6).
	decode(fields []string) (model.Product, error)

	// extras returns the two trailing fields for encoding.
	extras(p model.Product) (string, string)
}

// Order does not matter here, the discriminators are disjoint.
var variants = []variantCodec{
	foodCodec{},
	pharmacyCodec{},
}

func variantFor(tag string) variantCodec {
	for _, vc := range variants {
		if vc.canDecode(tag) {
			return vc
		}
	}
	return nil
}

func variantForProduct(p model.Product) variantCodec {
	for _, vc := range variants {
		if vc.handles(p) {
			return vc
		}
	}
	return nil
}

// commonFields extracts the positional fields shared by both variants.
// The category field may be absent on short records.
func commonFields(fields []string) (code, name, description, category string, unitPrice string, quantity int, err error) {
	code, name, description = fields[0], fields[1], fields[2]
	unitPrice = fields[4]
	quantity, err = strconv.Atoi(fields[5])
	if err != nil {
		return "", "", "", "", "", 0, model.NewValidationError("quantity", fields[5], "numeric", "invalid quantity")
	}
	if len(fields) > 6 && !strings.EqualFold(fields[6], nullField) {
		category = fields[6]
	}
	return code, name, description, category, unitPrice, quantity, nil
}

// DeriveFoodTaxTier normalizes a food product's tier from its persisted
// flags. The mapping is deterministic and total: no certifications and not
// organic means normal tier; certifications plus the congelados category
// means intermediate; everything else is reduced. This is why the tier is
// never written to the store.
func DeriveFoodTaxTier(organic bool, certifications []string, category string) model.TaxTier {
	switch {
	case len(certifications) == 0 && !organic:
		return model.TaxTierNormal
	case len(certifications) > 0 && strings.EqualFold(category, model.FoodCategoryFrozen):
		return model.TaxTierIntermediate
	default:
		return model.TaxTierReduced
	}
}

type foodCodec struct{}

func (foodCodec) canDecode(tag string) bool {
	return strings.EqualFold(tag, "alimentar")
}

func (foodCodec) handles(p model.Product) bool {
	_, ok := p.(*model.FoodProduct)
	return ok
}

func (foodCodec) decode(fields []string) (model.Product, error) {
	code, name, description, category, price, quantity, err := commonFields(fields)
	if err != nil {
		return nil, err
	}
	unitPrice, err := parsePrice(price)
	if err != nil {
		return nil, err
	}

	organic := len(fields) > 7 && strings.EqualFold(fields[7], "true")

	var certifications []string
	if len(fields) > 8 && fields[8] != "" {
		for _, c := range strings.Split(fields[8], ",") {
			if c = strings.TrimSpace(c); c != "" {
				certifications = append(certifications, c)
			}
		}
	}

	tier := DeriveFoodTaxTier(organic, certifications, category)
	if tier != model.TaxTierIntermediate {
		category = ""
	}

	return model.NewFoodProduct(code, name, description, unitPrice, quantity,
		tier, organic, certifications, category)
}

func (foodCodec) extras(p model.Product) (string, string) {
	food := p.(*model.FoodProduct)
	return strconv.FormatBool(food.Organic()), strings.Join(food.Certifications(), ",")
}

type pharmacyCodec struct{}

func (pharmacyCodec) canDecode(tag string) bool {
	return strings.EqualFold(tag, "farmácia") || strings.EqualFold(tag, "farmacia")
}

func (pharmacyCodec) handles(p model.Product) bool {
	_, ok := p.(*model.PharmacyProduct)
	return ok
}

func (pharmacyCodec) decode(fields []string) (model.Product, error) {
	code, name, description, category, price, quantity, err := commonFields(fields)
	if err != nil {
		return nil, err
	}
	unitPrice, err := parsePrice(price)
	if err != nil {
		return nil, err
	}

	prescribed := len(fields) > 7 && strings.EqualFold(fields[7], "true")

	var doctor string
	if len(fields) > 8 && !strings.EqualFold(fields[8], nullField) {
		doctor = fields[8]
	}
	if prescribed {
		category = ""
	} else {
		doctor = ""
	}

	return model.NewPharmacyProduct(code, name, description, unitPrice, quantity,
		prescribed, doctor, category)
}

func (pharmacyCodec) extras(p model.Product) (string, string) {
	pharmacy := p.(*model.PharmacyProduct)
	doctor := pharmacy.PrescribingDoctor()
	if doctor == "" {
		doctor = nullField
	}
	return strconv.FormatBool(pharmacy.RequiresPrescription()), doctor
}
