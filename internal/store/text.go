// Package store persists the in-memory dataset: the flat-text store, the
// bbolt snapshot and the CSV export.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/lusitania/vatledger/internal/codec"
	"github.com/lusitania/vatledger/internal/model"
)

// TextStore reads and writes the whole dataset at a fixed path in the
// line-oriented text format. Saving overwrites the file in place.
type TextStore struct {
	path string
	log  zerolog.Logger
}

// NewTextStore creates a text store over the given path.
func NewTextStore(path string, log zerolog.Logger) *TextStore {
	return &TextStore{path: path, log: log}
}

// Path returns the store file path.
func (s *TextStore) Path() string { return s.path }

// Load decodes the store file. A missing file means an empty dataset, not
// an error. Malformed records are skipped; each one is logged and kept on
// the returned result as a diagnostic.
func (s *TextStore) Load() (*codec.Result, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info().Str("path", s.path).Msg("store file not found, starting empty")
		return &codec.Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", s.path, err)
	}
	defer f.Close()

	res, err := codec.Decode(f)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics {
		s.log.Warn().
			Int("line", d.Line).
			Str("reason", d.Reason).
			Msg("skipped malformed record")
	}
	s.log.Debug().
		Int("clients", len(res.Clients)).
		Int("invoices", len(res.Invoices)).
		Str("path", s.path).
		Msg("store loaded")
	return res, nil
}

// Save writes the whole dataset to the store file, replacing its previous
// contents.
func (s *TextStore) Save(clients []*model.Client, invoices []*model.Invoice) error {
	return s.SaveTo(s.path, clients, invoices)
}

// SaveTo writes the dataset in store format to an arbitrary path.
func (s *TextStore) SaveTo(path string, clients []*model.Client, invoices []*model.Invoice) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating store %s: %w", path, err)
	}
	if err := codec.Encode(f, clients, invoices); err != nil {
		f.Close()
		return fmt.Errorf("writing store %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing store %s: %w", path, err)
	}
	s.log.Debug().
		Int("clients", len(clients)).
		Int("invoices", len(invoices)).
		Str("path", path).
		Msg("store saved")
	return nil
}
