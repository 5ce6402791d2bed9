package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusitania/vatledger/internal/model"
)

func mustClient(t *testing.T, name string, region model.Region, taxID int) *model.Client {
	t.Helper()
	c, err := model.NewClient(name, region, taxID)
	require.NoError(t, err)
	return c
}

func mustInvoice(t *testing.T, client *model.Client) *model.Invoice {
	t.Helper()
	inv, err := model.NewInvoice(1, client, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return inv
}

func TestInvoice_Totals(t *testing.T) {
	ana := mustClient(t, "Ana", model.RegionContinental, 1234)
	inv := mustInvoice(t, ana)

	// Organic reduced-tier food at 10×2: rate 6×0.9 = 5.4, tax 1.08.
	apples, err := model.NewFoodProduct("A1", "Maçãs", "Maçãs biológicas",
		decimal.NewFromInt(10), 2, model.TaxTierReduced, true,
		[]string{"ISO22000", "HACCP"}, "")
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(apples))

	assert.Equal(t, "20", inv.TotalExVAT().String())
	assert.Equal(t, "1.08", inv.TotalVAT().String())
	assert.Equal(t, "21.08", inv.TotalIncVAT().String())
}

func TestInvoice_IncVATIsSumOfParts(t *testing.T) {
	ana := mustClient(t, "Ana", model.RegionMadeira, 1234)
	inv := mustInvoice(t, ana)

	food, err := model.NewFoodProduct("A1", "Vinho", "Vinho tinto",
		decimal.RequireFromString("7.35"), 3, model.TaxTierIntermediate, false, nil, "vinho")
	require.NoError(t, err)
	rx, err := model.NewPharmacyProduct("F1", "Xarope", "Xarope para a tosse",
		decimal.RequireFromString("4.99"), 2, true, "Dr. Costa", "")
	require.NoError(t, err)

	require.NoError(t, inv.AddProduct(food))
	require.NoError(t, inv.AddProduct(rx))

	assert.True(t, inv.TotalIncVAT().Equal(inv.TotalExVAT().Add(inv.TotalVAT())))
	assert.True(t, inv.TotalVAT().GreaterThan(decimal.Zero))
}

func TestInvoice_RecalculateIdempotent(t *testing.T) {
	ana := mustClient(t, "Ana", model.RegionContinental, 1234)
	inv := mustInvoice(t, ana)

	p, err := model.NewFoodProduct("A1", "Arroz", "Arroz agulha",
		decimal.NewFromInt(10), 2, model.TaxTierNormal, false, nil, "")
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(p))

	exVAT, vat, incVAT := inv.TotalExVAT(), inv.TotalVAT(), inv.TotalIncVAT()
	require.NoError(t, inv.Recalculate())
	require.NoError(t, inv.Recalculate())

	assert.True(t, inv.TotalExVAT().Equal(exVAT))
	assert.True(t, inv.TotalVAT().Equal(vat))
	assert.True(t, inv.TotalIncVAT().Equal(incVAT))
}

func TestInvoice_SetClientRecomputes(t *testing.T) {
	ana := mustClient(t, "Ana", model.RegionContinental, 1234)
	rui := mustClient(t, "Rui", model.RegionAzores, 4321)
	inv := mustInvoice(t, ana)

	p, err := model.NewFoodProduct("A1", "Arroz", "Arroz agulha",
		decimal.NewFromInt(10), 1, model.TaxTierNormal, false, nil, "")
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(p))
	assert.Equal(t, "2.3", inv.TotalVAT().String()) // 23%

	require.NoError(t, inv.SetClient(rui))
	assert.Equal(t, "1.6", inv.TotalVAT().String()) // 16%
	assert.Equal(t, rui, inv.Client())
}

func TestInvoice_ProductsReturnsCopy(t *testing.T) {
	ana := mustClient(t, "Ana", model.RegionContinental, 1234)
	inv := mustInvoice(t, ana)

	p, err := model.NewFoodProduct("A1", "Arroz", "Arroz agulha",
		decimal.NewFromInt(10), 1, model.TaxTierNormal, false, nil, "")
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(p))

	products := inv.Products()
	products[0] = nil
	assert.NotNil(t, inv.Products()[0])
}

func TestInvoice_ReplaceProductsRollsBackOnError(t *testing.T) {
	// Products that cannot be taxed for the invoice's client leave the
	// previous list and totals in place.
	ana := mustClient(t, "Ana", model.RegionContinental, 1234)
	inv := mustInvoice(t, ana)

	good, err := model.NewFoodProduct("A1", "Arroz", "Arroz agulha",
		decimal.NewFromInt(10), 1, model.TaxTierNormal, false, nil, "")
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(good))
	before := inv.TotalIncVAT()

	assert.Error(t, inv.ReplaceProducts([]model.Product{good, nil}))
	assert.Len(t, inv.Products(), 1)
	assert.True(t, inv.TotalIncVAT().Equal(before))
}

func TestNewInvoice_Validation(t *testing.T) {
	ana := mustClient(t, "Ana", model.RegionContinental, 1234)

	_, err := model.NewInvoice(0, ana, time.Now())
	assert.Error(t, err)

	_, err = model.NewInvoice(1, nil, time.Now())
	assert.Error(t, err)
}

func TestClient_Validation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := mustClient(t, "  Ana  ", model.RegionContinental, 1234)
		assert.Equal(t, "Ana", c.Name())
		assert.Equal(t, model.RegionContinental, c.Region())
		assert.Equal(t, 1234, c.TaxID())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := model.NewClient("   ", model.RegionContinental, 1234)
		assert.Error(t, err)
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := model.NewClient("Ana", model.Region("Algarve"), 1234)
		assert.Error(t, err)
	})

	t.Run("tax ID digits", func(t *testing.T) {
		for _, taxID := range []int{0, 999, 10000, -1234} {
			_, err := model.NewClient("Ana", model.RegionContinental, taxID)
			assert.Error(t, err, "taxID %d", taxID)
		}
	})
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want model.Region
		ok   bool
	}{
		{"Continente", model.RegionContinental, true},
		{"continente", model.RegionContinental, true},
		{"continental", model.RegionContinental, true},
		{"Madeira", model.RegionMadeira, true},
		{"Açores", model.RegionAzores, true},
		{"acores", model.RegionAzores, true},
		{"azores", model.RegionAzores, true},
		{"Algarve", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, err := model.ParseRegion(tt.in)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, "input %q", tt.in)
		}
	}
}

func TestParseTaxTier(t *testing.T) {
	tests := []struct {
		in   string
		want model.TaxTier
		ok   bool
	}{
		{"Taxa reduzida", model.TaxTierReduced, true},
		{"taxa reduzida", model.TaxTierReduced, true},
		{"reduzida", model.TaxTierReduced, true},
		{"Taxa intermédia", model.TaxTierIntermediate, true},
		{"taxa intermedia", model.TaxTierIntermediate, true},
		{"Taxa normal", model.TaxTierNormal, true},
		{"normal", model.TaxTierNormal, true},
		{"Taxa máxima", "", false},
	}

	for _, tt := range tests {
		got, err := model.ParseTaxTier(tt.in)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, "input %q", tt.in)
		}
	}
}
