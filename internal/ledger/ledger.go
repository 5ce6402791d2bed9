// Package ledger holds the in-memory dataset and exposes the operations
// the CLI and the HTTP API consume: client and invoice management, tax
// aggregation, persistence and statistics.
package ledger

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lusitania/vatledger/internal/codec"
	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/store"
)

// Ledger owns the client and invoice collections for the process lifetime.
// Mutating operations persist the whole dataset to the text store before
// returning. A single mutex serializes access because the HTTP API shares
// one ledger across requests.
type Ledger struct {
	mu       sync.Mutex
	clients  []*model.Client
	invoices []*model.Invoice
	text     *store.TextStore
	snapshot *store.SnapshotStore
	log      zerolog.Logger
}

// New creates an empty ledger over the given stores.
func New(text *store.TextStore, snapshot *store.SnapshotStore, log zerolog.Logger) *Ledger {
	return &Ledger{text: text, snapshot: snapshot, log: log}
}

// Load populates the ledger from disk. The snapshot wins when it holds
// clients; otherwise the text store is decoded. A broken snapshot is
// logged and treated as empty so the text store can still be used.
func (l *Ledger) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	clients, invoices, err := l.snapshot.Load()
	if err != nil {
		l.log.Warn().Err(err).Msg("snapshot unreadable, falling back to text store")
		clients, invoices = nil, nil
	}
	if len(clients) == 0 {
		res, err := l.text.Load()
		if err != nil {
			return err
		}
		clients, invoices = res.Clients, res.Invoices
	}
	l.clients = clients
	l.invoices = invoices
	return nil
}

// persist writes the dataset to the text store. Callers hold the mutex.
func (l *Ledger) persist() error {
	return l.text.Save(l.clients, l.invoices)
}

func (l *Ledger) findClient(taxID int) *model.Client {
	for _, c := range l.clients {
		if c.TaxID() == taxID {
			return c
		}
	}
	return nil
}

func (l *Ledger) findInvoice(number int) *model.Invoice {
	for _, inv := range l.invoices {
		if inv.Number() == number {
			return inv
		}
	}
	return nil
}

// CreateClient registers a new client. The tax ID must be unique.
func (l *Ledger) CreateClient(name string, region model.Region, taxID int) (*model.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.findClient(taxID) != nil {
		return nil, model.NewValidationError("taxId", taxID, "unique", "a client with this tax ID already exists")
	}
	client, err := model.NewClient(name, region, taxID)
	if err != nil {
		return nil, err
	}
	l.clients = append(l.clients, client)
	if err := l.persist(); err != nil {
		return nil, err
	}
	l.log.Info().Int("tax_id", taxID).Msg("client created")
	return client, nil
}

// EditClient updates a client in place. Zero values keep the current field:
// empty name, empty region and newTaxID of 0 leave them untouched.
// Existing invoices referencing the client keep their stored totals; they
// are not retroactively recomputed.
func (l *Ledger) EditClient(taxID int, name string, region model.Region, newTaxID int) (*model.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	client := l.findClient(taxID)
	if client == nil {
		return nil, model.NewNotFoundError("client", taxID)
	}
	if name != "" {
		if err := client.SetName(name); err != nil {
			return nil, err
		}
	}
	if region != "" {
		if err := client.SetRegion(region); err != nil {
			return nil, err
		}
	}
	if newTaxID != 0 && newTaxID != taxID {
		if l.findClient(newTaxID) != nil {
			return nil, model.NewValidationError("taxId", newTaxID, "unique", "a client with this tax ID already exists")
		}
		if err := client.SetTaxID(newTaxID); err != nil {
			return nil, err
		}
	}
	if err := l.persist(); err != nil {
		return nil, err
	}
	return client, nil
}

// Clients returns a copy of the client list.
func (l *Ledger) Clients() []*model.Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.Client, len(l.clients))
	copy(out, l.clients)
	return out
}

// FindClient looks a client up by tax ID.
func (l *Ledger) FindClient(taxID int) (*model.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c := l.findClient(taxID); c != nil {
		return c, nil
	}
	return nil, model.NewNotFoundError("client", taxID)
}

// CreateInvoice opens an empty invoice for an existing client. The number
// is the current invoice count plus one; invoices are never deleted, so
// numbers are never reused.
func (l *Ledger) CreateInvoice(clientTaxID int, issueDate time.Time) (*model.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	client := l.findClient(clientTaxID)
	if client == nil {
		return nil, model.NewNotFoundError("client", clientTaxID)
	}
	inv, err := model.NewInvoice(len(l.invoices)+1, client, issueDate)
	if err != nil {
		return nil, err
	}
	l.invoices = append(l.invoices, inv)
	if err := l.persist(); err != nil {
		return nil, err
	}
	l.log.Info().Int("number", inv.Number()).Int("tax_id", clientTaxID).Msg("invoice created")
	return inv, nil
}

// Invoices returns a copy of the invoice list.
func (l *Ledger) Invoices() []*model.Invoice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.Invoice, len(l.invoices))
	copy(out, l.invoices)
	return out
}

// FindInvoice looks an invoice up by number.
func (l *Ledger) FindInvoice(number int) (*model.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if inv := l.findInvoice(number); inv != nil {
		return inv, nil
	}
	return nil, model.NewNotFoundError("invoice", number)
}

// AddProduct appends a product to an invoice and recomputes its totals.
func (l *Ledger) AddProduct(number int, p model.Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv := l.findInvoice(number)
	if inv == nil {
		return model.NewNotFoundError("invoice", number)
	}
	if err := inv.AddProduct(p); err != nil {
		return err
	}
	return l.persist()
}

// ReplaceProducts swaps an invoice's whole product list.
func (l *Ledger) ReplaceProducts(number int, products []model.Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv := l.findInvoice(number)
	if inv == nil {
		return model.NewNotFoundError("invoice", number)
	}
	if err := inv.ReplaceProducts(products); err != nil {
		return err
	}
	return l.persist()
}

// SetInvoiceClient re-points an invoice at another existing client and
// recomputes its totals.
func (l *Ledger) SetInvoiceClient(number, clientTaxID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv := l.findInvoice(number)
	if inv == nil {
		return model.NewNotFoundError("invoice", number)
	}
	client := l.findClient(clientTaxID)
	if client == nil {
		return model.NewNotFoundError("client", clientTaxID)
	}
	if err := inv.SetClient(client); err != nil {
		return err
	}
	return l.persist()
}

// SetInvoiceDate changes an invoice's issue date.
func (l *Ledger) SetInvoiceDate(number int, issueDate time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv := l.findInvoice(number)
	if inv == nil {
		return model.NewNotFoundError("invoice", number)
	}
	inv.SetIssueDate(issueDate)
	return l.persist()
}

// ImportText re-reads the text store and, when it yields at least one
// invoice, replaces the in-memory dataset with it. It returns the number
// of invoices imported.
func (l *Ledger) ImportText() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.text.Load()
	if err != nil {
		return 0, err
	}
	if len(res.Invoices) > 0 {
		l.clients = res.Clients
		l.invoices = res.Invoices
	}
	return len(res.Invoices), nil
}

// ExportText writes the dataset in store format to an arbitrary path.
func (l *Ledger) ExportText(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text.SaveTo(path, l.clients, l.invoices)
}

// WriteStore writes the dataset in store format to w.
func (l *Ledger) WriteStore(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return codec.Encode(w, l.clients, l.invoices)
}

// SaveSnapshot dumps the dataset to the bbolt snapshot.
func (l *Ledger) SaveSnapshot() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot.Save(l.clients, l.invoices)
}

// Save persists the dataset to the text store.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persist()
}
