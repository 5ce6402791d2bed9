package store_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/store"
)

func fixture(t *testing.T) ([]*model.Client, []*model.Invoice) {
	t.Helper()
	ana, err := model.NewClient("Ana", model.RegionContinental, 1234)
	require.NoError(t, err)
	rui, err := model.NewClient("Rui", model.RegionAzores, 4321)
	require.NoError(t, err)

	inv, err := model.NewInvoice(1, ana, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	food, err := model.NewFoodProduct("A1", "Maçãs", "Maçãs biológicas",
		decimal.NewFromInt(10), 2, model.TaxTierReduced, true, []string{"ISO22000", "HACCP"}, "")
	require.NoError(t, err)
	rx, err := model.NewPharmacyProduct("F1", "Xarope", "Xarope para a tosse",
		decimal.RequireFromString("7.5"), 1, true, "Dr. Costa", "")
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(food))
	require.NoError(t, inv.AddProduct(rx))

	return []*model.Client{ana, rui}, []*model.Invoice{inv}
}

func TestTextStore_MissingFileIsEmpty(t *testing.T) {
	s := store.NewTextStore(filepath.Join(t.TempDir(), "clientes.txt"), zerolog.Nop())

	res, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, res.Clients)
	assert.Empty(t, res.Invoices)
}

func TestTextStore_SaveLoad(t *testing.T) {
	clients, invoices := fixture(t)
	s := store.NewTextStore(filepath.Join(t.TempDir(), "clientes.txt"), zerolog.Nop())

	require.NoError(t, s.Save(clients, invoices))

	res, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Clients, 2)
	require.Len(t, res.Invoices, 1)
	assert.True(t, res.Invoices[0].TotalIncVAT().Equal(invoices[0].TotalIncVAT()))
}

func TestTextStore_SaveTo(t *testing.T) {
	clients, invoices := fixture(t)
	dir := t.TempDir()
	s := store.NewTextStore(filepath.Join(dir, "clientes.txt"), zerolog.Nop())

	exportPath := filepath.Join(dir, "backup.txt")
	require.NoError(t, s.SaveTo(exportPath, clients, invoices))

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Clientes\n"))
	assert.Contains(t, string(data), "Rui;Açores;4321")
}

func TestSnapshotStore_MissingFileIsEmpty(t *testing.T) {
	s := store.NewSnapshotStore(filepath.Join(t.TempDir(), "vatledger.db"), zerolog.Nop())

	clients, invoices, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.Empty(t, invoices)
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	clients, invoices := fixture(t)
	s := store.NewSnapshotStore(filepath.Join(t.TempDir(), "vatledger.db"), zerolog.Nop())

	require.NoError(t, s.Save(clients, invoices))

	gotClients, gotInvoices, err := s.Load()
	require.NoError(t, err)
	require.Len(t, gotClients, 2)
	require.Len(t, gotInvoices, 1)

	assert.Equal(t, "Ana", gotClients[0].Name())
	assert.Equal(t, model.RegionContinental, gotClients[0].Region())

	inv := gotInvoices[0]
	assert.Equal(t, 1, inv.Number())
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), inv.IssueDate())
	assert.True(t, inv.TotalIncVAT().Equal(invoices[0].TotalIncVAT()))

	// Unlike the text store the snapshot keeps tiers verbatim.
	food, ok := inv.Products()[0].(*model.FoodProduct)
	require.True(t, ok)
	assert.Equal(t, model.TaxTierReduced, food.TaxTier())
	assert.True(t, food.Organic())
	assert.Equal(t, []string{"ISO22000", "HACCP"}, food.Certifications())

	rx, ok := inv.Products()[1].(*model.PharmacyProduct)
	require.True(t, ok)
	assert.Equal(t, "Dr. Costa", rx.PrescribingDoctor())
}

func TestSnapshotStore_SaveReplaces(t *testing.T) {
	clients, invoices := fixture(t)
	s := store.NewSnapshotStore(filepath.Join(t.TempDir(), "vatledger.db"), zerolog.Nop())

	require.NoError(t, s.Save(clients, invoices))
	require.NoError(t, s.Save(clients[:1], nil))

	gotClients, gotInvoices, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, gotClients, 1)
	assert.Empty(t, gotInvoices)
}

func TestExportCSV(t *testing.T) {
	_, invoices := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, store.ExportCSV(&buf, invoices))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"invoice_number,issue_date,client_name,client_tax_id,region,product_code,product_name,product_type,quantity,unit_price,line_ex_vat,line_vat,line_inc_vat",
		lines[0])
	assert.Equal(t, "1,2026-01-15,Ana,1234,Continente,A1,Maçãs,Alimentar,2,10,20,1.08,21.08", lines[1])
	assert.Equal(t, "1,2026-01-15,Ana,1234,Continente,F1,Xarope,Farmacia,1,7.5,7.5,0.45,7.95", lines[2])
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, store.ExportCSV(&buf, nil))
	assert.Equal(t,
		"invoice_number,issue_date,client_name,client_tax_id,region,product_code,product_name,product_type,quantity,unit_price,line_ex_vat,line_vat,line_inc_vat",
		strings.TrimSpace(buf.String()))
}
