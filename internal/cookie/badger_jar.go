// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cookie

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/logging"
)

// cookieKeyPrefix namespaces cookie entries in BadgerDB.
const cookieKeyPrefix = "cookie:"

// badgerRecord is the stored form of a cookie.
type badgerRecord struct {
	Value  string    `json:"value"`
	Path   string    `json:"path,omitempty"`
	Domain string    `json:"domain,omitempty"`
	Secure bool      `json:"secure,omitempty"`
	SetAt  time.Time `json:"setAt"`
}

// BadgerJar persists cookies in BadgerDB so that a CLI "browser" keeps its
// identity between runs. Expiry uses BadgerDB's native entry TTL.
type BadgerJar struct {
	db    *badger.DB
	owned bool
}

// NewBadgerJar wraps an already open database. The caller keeps ownership.
func NewBadgerJar(db *badger.DB) *BadgerJar {
	return &BadgerJar{db: db}
}

// OpenBadgerJar opens (or creates) a jar at path. An empty path opens an
// in-memory database.
func OpenBadgerJar(path string) (*BadgerJar, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = logging.NewPrintfAdapter("badger")

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Debug().
		Str("path", path).
		Bool("in_memory", path == "").
		Msg("Cookie jar opened")
	return &BadgerJar{db: db, owned: true}, nil
}

// Get returns the value of name if present and not expired.
func (j *BadgerJar) Get(name string) (string, bool, error) {
	var rec badgerRecord
	found := false

	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cookieKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get cookie: %w", err)
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	return rec.Value, true, nil
}

// Set stores value under name with opts.MaxAge as the entry TTL.
func (j *BadgerJar) Set(name, value string, opts Options) error {
	data, err := json.Marshal(badgerRecord{
		Value:  value,
		Path:   opts.Path,
		Domain: opts.Domain,
		Secure: opts.Secure,
		SetAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal cookie record: %w", err)
	}

	return j.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(cookieKeyPrefix+name), data)
		if opts.MaxAge > 0 {
			e = e.WithTTL(opts.MaxAge)
		}
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("set cookie: %w", err)
		}
		return nil
	})
}

// Delete removes name.
func (j *BadgerJar) Delete(name string, _ Options) error {
	return j.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(cookieKeyPrefix + name))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete cookie: %w", err)
		}
		return nil
	})
}

// Names lists the stored, unexpired cookie names.
func (j *BadgerJar) Names() ([]string, error) {
	var names []string
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(cookieKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cookies: %w", err)
	}
	return names, nil
}

// Close closes the database if the jar opened it.
func (j *BadgerJar) Close() error {
	if !j.owned {
		return nil
	}
	return j.db.Close()
}
