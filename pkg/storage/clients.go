package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adamluckydo/invoice-generator/pkg/invoice"
)

// Client is a saved, reusable recipient identity.
type Client struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

// Display returns "name (company)" when a company is set, otherwise the
// bare name.
func (c Client) Display() string {
	if c.Company != "" {
		return fmt.Sprintf("%s (%s)", c.Name, c.Company)
	}
	return c.Name
}

// Entry is one row of a client listing.
type Entry struct {
	Key     string
	Display string
}

// ClientStore persists client profiles as a single JSON object keyed by
// client identifier. Saves replace the whole file; last writer wins.
type ClientStore struct {
	paths *Paths
}

// NewClientStore returns a ClientStore over the given paths.
func NewClientStore(paths *Paths) *ClientStore {
	return &ClientStore{paths: paths}
}

// Load reads all saved profiles. A missing store file yields an empty map;
// an unparseable one yields invoice.ErrCorrupt.
func (s *ClientStore) Load() (map[string]Client, error) {
	data, err := os.ReadFile(s.paths.ClientsFile())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Client{}, nil
		}
		return nil, fmt.Errorf("failed to read client store: %w", err)
	}

	var clients map[string]Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("client store %s: %w: %v", s.paths.ClientsFile(), invoice.ErrCorrupt, err)
	}
	if clients == nil {
		clients = map[string]Client{}
	}
	return clients, nil
}

// Save overwrites the store with the given mapping. The write goes to a
// temp file in the same directory first and is renamed into place, so a
// crash never leaves a half-written store.
func (s *ClientStore) Save(clients map[string]Client) error {
	if err := s.paths.EnsureDataDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(clients, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal client store: %w", err)
	}
	data = append(data, '\n')

	target := s.paths.ClientsFile()
	tmp, err := os.CreateTemp(filepath.Dir(target), ".clients-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write client store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close client store: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace client store: %w", err)
	}
	return nil
}

// Get returns the profile for key, or invoice.ErrNotFound.
func (s *ClientStore) Get(key string) (Client, error) {
	clients, err := s.Load()
	if err != nil {
		return Client{}, err
	}
	c, ok := clients[key]
	if !ok {
		return Client{}, fmt.Errorf("client %q: %w", key, invoice.ErrNotFound)
	}
	return c, nil
}

// Upsert saves or replaces the profile under key.
func (s *ClientStore) Upsert(key string, c Client) error {
	clients, err := s.Load()
	if err != nil {
		return err
	}
	clients[key] = c
	return s.Save(clients)
}

// Delete removes the profile under key. It returns false without touching
// the store file when the key is absent.
func (s *ClientStore) Delete(key string) (bool, error) {
	clients, err := s.Load()
	if err != nil {
		return false, err
	}
	if _, ok := clients[key]; !ok {
		return false, nil
	}
	delete(clients, key)
	if err := s.Save(clients); err != nil {
		return false, err
	}
	return true, nil
}

// List returns all profiles as (key, display) pairs sorted by key.
func (s *ClientStore) List() ([]Entry, error) {
	clients, err := s.Load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(clients))
	for k := range clients {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Display: clients[k].Display()})
	}
	return entries, nil
}
