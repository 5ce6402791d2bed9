package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/lusitania/vatledger/internal/model"
)

var (
	clientsBucket  = []byte("clients")
	invoicesBucket = []byte("invoices")
)

// SnapshotStore dumps and restores the whole dataset to a bbolt file at a
// fixed path. Unlike the text store it is a full object dump: food tax
// tiers are stored verbatim instead of being re-derived on load.
type SnapshotStore struct {
	path string
	log  zerolog.Logger
}

// NewSnapshotStore creates a snapshot store over the given path.
func NewSnapshotStore(path string, log zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{path: path, log: log}
}

// Path returns the snapshot file path.
func (s *SnapshotStore) Path() string { return s.path }

type clientDoc struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	TaxID  int    `json:"tax_id"`
}

type productDoc struct {
	Type           string          `json:"type"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	TaxTier        string          `json:"tax_tier,omitempty"`
	Organic        bool            `json:"organic,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	Category       string          `json:"category,omitempty"`
	Prescribed     bool            `json:"prescribed,omitempty"`
	Doctor         string          `json:"doctor,omitempty"`
}

type invoiceDoc struct {
	Number      int          `json:"number"`
	IssueDate   string       `json:"issue_date"`
	ClientTaxID int          `json:"client_tax_id"`
	Products    []productDoc `json:"products"`
}

// Save replaces the snapshot with the given dataset.
func (s *SnapshotStore) Save(clients []*model.Client, invoices []*model.Invoice) error {
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("opening snapshot %s: %w", s.path, err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{clientsBucket, invoicesBucket} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}
		cb, err := tx.CreateBucket(clientsBucket)
		if err != nil {
			return err
		}
		for _, c := range clients {
			data, err := json.Marshal(clientDoc{Name: c.Name(), Region: string(c.Region()), TaxID: c.TaxID()})
			if err != nil {
				return err
			}
			if err := cb.Put([]byte(fmt.Sprintf("%04d", c.TaxID())), data); err != nil {
				return err
			}
		}
		ib, err := tx.CreateBucket(invoicesBucket)
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			data, err := json.Marshal(invoiceToDoc(inv))
			if err != nil {
				return err
			}
			if err := ib.Put([]byte(fmt.Sprintf("%08d", inv.Number())), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing snapshot %s: %w", s.path, err)
	}
	s.log.Debug().
		Int("clients", len(clients)).
		Int("invoices", len(invoices)).
		Str("path", s.path).
		Msg("snapshot saved")
	return nil
}

// Load restores the dataset from the snapshot. A missing file means an
// empty dataset. Records that no longer reconstruct (for example an
// invoice whose client is gone) are skipped with a log entry, mirroring
// the text store's recovery behavior.
func (s *SnapshotStore) Load() ([]*model.Client, []*model.Invoice, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.log.Info().Str("path", s.path).Msg("snapshot not found, starting empty")
		return nil, nil, nil
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("opening snapshot %s: %w", s.path, err)
	}
	defer db.Close()

	var clients []*model.Client
	var invoices []*model.Invoice

	err = db.View(func(tx *bolt.Tx) error {
		if cb := tx.Bucket(clientsBucket); cb != nil {
			if err := cb.ForEach(func(_, v []byte) error {
				var doc clientDoc
				if err := json.Unmarshal(v, &doc); err != nil {
					return err
				}
				client, err := model.NewClient(doc.Name, model.Region(doc.Region), doc.TaxID)
				if err != nil {
					s.log.Warn().Err(err).Msg("skipping snapshot client")
					return nil
				}
				clients = append(clients, client)
				return nil
			}); err != nil {
				return err
			}
		}
		if ib := tx.Bucket(invoicesBucket); ib != nil {
			if err := ib.ForEach(func(_, v []byte) error {
				var doc invoiceDoc
				if err := json.Unmarshal(v, &doc); err != nil {
					return err
				}
				inv, err := invoiceFromDoc(doc, clients)
				if err != nil {
					s.log.Warn().Err(err).Int("number", doc.Number).Msg("skipping snapshot invoice")
					return nil
				}
				invoices = append(invoices, inv)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot %s: %w", s.path, err)
	}
	s.log.Debug().
		Int("clients", len(clients)).
		Int("invoices", len(invoices)).
		Str("path", s.path).
		Msg("snapshot loaded")
	return clients, invoices, nil
}

func invoiceToDoc(inv *model.Invoice) invoiceDoc {
	doc := invoiceDoc{
		Number:      inv.Number(),
		IssueDate:   inv.IssueDate().Format("2006-01-02"),
		ClientTaxID: inv.Client().TaxID(),
	}
	for _, p := range inv.Products() {
		pd := productDoc{
			Type:        string(p.Type()),
			Code:        p.Code(),
			Name:        p.Name(),
			Description: p.Description(),
			UnitPrice:   p.UnitPrice(),
			Quantity:    p.Quantity(),
			Category:    p.Category(),
		}
		switch v := p.(type) {
		case *model.FoodProduct:
			pd.TaxTier = string(v.TaxTier())
			pd.Organic = v.Organic()
			pd.Certifications = v.Certifications()
		case *model.PharmacyProduct:
			pd.Prescribed = v.RequiresPrescription()
			pd.Doctor = v.PrescribingDoctor()
		}
		doc.Products = append(doc.Products, pd)
	}
	return doc
}

func invoiceFromDoc(doc invoiceDoc, clients []*model.Client) (*model.Invoice, error) {
	var client *model.Client
	for _, c := range clients {
		if c.TaxID() == doc.ClientTaxID {
			client = c
			break
		}
	}
	if client == nil {
		return nil, model.NewNotFoundError("client", doc.ClientTaxID)
	}
	date, err := time.Parse("2006-01-02", doc.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid issue date %q: %w", doc.IssueDate, err)
	}
	inv, err := model.NewInvoice(doc.Number, client, date)
	if err != nil {
		return nil, err
	}
	for _, pd := range doc.Products {
		product, err := productFromDoc(pd)
		if err != nil {
			return nil, err
		}
		if err := inv.AddProduct(product); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func productFromDoc(doc productDoc) (model.Product, error) {
	switch model.ProductType(doc.Type) {
	case model.ProductTypeFood:
		return model.NewFoodProduct(doc.Code, doc.Name, doc.Description, doc.UnitPrice, doc.Quantity,
			model.TaxTier(doc.TaxTier), doc.Organic, doc.Certifications, doc.Category)
	case model.ProductTypePharmacy:
		return model.NewPharmacyProduct(doc.Code, doc.Name, doc.Description, doc.UnitPrice, doc.Quantity,
			doc.Prescribed, doc.Doctor, doc.Category)
	}
	return nil, model.NewValidationError("type", doc.Type, "oneof", "unknown product type")
}
