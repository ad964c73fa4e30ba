// Package fallback loads the static menu document used when the live
// repository is empty or unreachable.
package fallback

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"hungerhub/models"
)

// ErrMissing means the fallback document could not be located or parsed.
var ErrMissing = errors.New("fallback document missing")

// ServiceZone is a delivery area advertised to customers. Matching against
// user input happens client-side; the server only stores and serves it.
type ServiceZone struct {
	Name     string   `json:"name"`
	Time     string   `json:"time"`
	ZipCode  string   `json:"zipCode"`
	Keywords []string `json:"keywords"`
}

// CardType is a card-number pattern for the payment form. The prefix is
// passed through to the client untouched.
type CardType struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// Document is the full fallback file: the menu plus auxiliary reference
// data consumed directly by the client.
type Document struct {
	MenuItems    []models.MenuItem `json:"menuItems"`
	ServiceZones []ServiceZone     `json:"serviceZones"`
	CardTypes    []CardType        `json:"cardTypes"`
}

// Store reads the fallback document from a fixed path. Every Load hits the
// filesystem so edits to the file show up without a restart.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load parses the document at the store's path. Both the wrapped form
// {"menuItems": [...]} and a bare top-level array of items are accepted.
func (s *Store) Load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissing, s.path)
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []models.MenuItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissing, err)
		}
		return &Document{MenuItems: items}, nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissing, err)
	}
	return &doc, nil
}

// Items returns just the menu list, in file order.
func (s *Store) Items() ([]models.MenuItem, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.MenuItems, nil
}
