package ledger_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusitania/vatledger/internal/ledger"
	"github.com/lusitania/vatledger/internal/model"
)

func viewFixture(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := newTestLedger(t)
	_, err := l.CreateClient("Ana", model.RegionContinental, 1234)
	require.NoError(t, err)
	inv, err := l.CreateInvoice(1234, issueDate())
	require.NoError(t, err)

	food, err := model.NewFoodProduct("A1", "Maçãs", "Maçãs biológicas",
		decimal.NewFromInt(10), 2, model.TaxTierReduced, true, []string{"ISO22000", "HACCP"}, "")
	require.NoError(t, err)
	rx, err := model.NewPharmacyProduct("F1", "Xarope", "Xarope para a tosse",
		decimal.RequireFromString("7.5"), 1, true, "Dr. Costa", "")
	require.NoError(t, err)
	require.NoError(t, l.AddProduct(inv.Number(), food))
	require.NoError(t, l.AddProduct(inv.Number(), rx))
	return l
}

func TestViewInvoice(t *testing.T) {
	l := viewFixture(t)

	view, err := l.ViewInvoice(1)
	require.NoError(t, err)

	assert.Equal(t, 1, view.Number)
	assert.Equal(t, "Ana", view.ClientName)
	assert.Equal(t, 1234, view.ClientTaxID)
	assert.Equal(t, "Continente", view.Region)
	require.Len(t, view.Lines, 2)

	// Organic reduced tier: 6 × 0.9 = 5.4% effective.
	food := view.Lines[0]
	assert.Equal(t, "5.4", food.RatePercent.String())
	assert.Equal(t, "20", food.ExVAT.String())
	assert.Equal(t, "1.08", food.VAT.String())
	assert.Equal(t, "21.08", food.IncVAT.String())
	assert.Equal(t, "biológico: sim, certificações: 2", food.Details)

	rx := view.Lines[1]
	assert.Equal(t, "6", rx.RatePercent.String())
	assert.Equal(t, "prescrição: Dr. Costa", rx.Details)

	assert.Equal(t, "27.5", view.TotalExVAT.String())
	assert.Equal(t, "1.53", view.TotalVAT.String())
	assert.Equal(t, "29.03", view.TotalIncVAT.String())
}

func TestViewInvoice_NotFound(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.ViewInvoice(7)

	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "invoice", notFound.Kind)
}

func TestWriteReport(t *testing.T) {
	l := viewFixture(t)

	var buf bytes.Buffer
	require.NoError(t, l.WriteReport(&buf))

	out := buf.String()
	assert.Contains(t, out, "Fatura Nº: 1")
	assert.Contains(t, out, "Cliente: Ana")
	assert.Contains(t, out, "Número de Contribuinte: 1234")
	assert.Contains(t, out, "Código: A1, Nome: Maçãs")
	assert.Contains(t, out, "Valor Total Sem IVA: 27.5")
	assert.Contains(t, out, "Valor Total Com IVA: 29.03")
}

func TestLedgerExportCSV(t *testing.T) {
	l := viewFixture(t)

	var buf bytes.Buffer
	require.NoError(t, l.ExportCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "invoice_number,issue_date,client_name")
	assert.Contains(t, out, "1,2026-01-15,Ana,1234,Continente,A1,Maçãs,Alimentar,2,10,20,1.08,21.08")
	assert.Contains(t, out, "F1,Xarope,Farmacia,1,7.5,7.5,0.45,7.95")
}
