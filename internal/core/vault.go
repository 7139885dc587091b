package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/envelope"
	"github.com/illarion/qsandbox/internal/git"
	"github.com/illarion/qsandbox/internal/storage"
)

var (
	ErrNotInitialized = errors.New("package store not found")
	ErrNotFound       = storage.ErrRecordNotFound
	ErrAmbiguousID    = errors.New("record ID prefix is ambiguous")
)

// Vault keeps saved packages in a bbolt file. Each call opens and closes
// the database, so separate processes can share the file.
type Vault struct {
	path string
	now  func() time.Time
}

// NewVault returns a Vault backed by the file at path.
func NewVault(path string) *Vault {
	return &Vault{path: path, now: time.Now}
}

// Path returns the store file path.
func (v *Vault) Path() string {
	return v.path
}

// Exists reports whether the store file is present.
func (v *Vault) Exists() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// withStore opens the store, creating it first when create is set.
func (v *Vault) withStore(create bool, fn func(db *storage.Storage) error) error {
	if !create && !v.Exists() {
		return ErrNotInitialized
	}

	db, err := storage.Open(v.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if create {
		if err := db.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
	} else if ok, err := db.IsInitialized(); err != nil || !ok {
		return ErrNotInitialized
	}
	return fn(db)
}

// Save validates pkg and stores it with the level it was sealed at.
func (v *Vault) Save(label string, level crypto.Level, pkg string) (*storage.Record, error) {
	pkg = strings.TrimSpace(pkg)
	if _, err := envelope.Decode(pkg); err != nil {
		return nil, err
	}

	rec := storage.Record{
		ID:      uuid.NewString(),
		Label:   label,
		Level:   level,
		Package: pkg,
		Created: v.now(),
	}
	err := v.withStore(true, func(db *storage.Storage) error {
		return db.Put(rec)
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("id", rec.ID).Str("level", level.String()).Msg("package saved")
	return &rec, nil
}

// List returns saved records, newest first.
func (v *Vault) List() ([]storage.Record, error) {
	var records []storage.Record
	err := v.withStore(false, func(db *storage.Storage) error {
		var err error
		records, err = db.List()
		return err
	})
	return records, err
}

// Get returns the record whose ID equals or uniquely starts with id.
func (v *Vault) Get(id string) (*storage.Record, error) {
	var rec *storage.Record
	err := v.withStore(false, func(db *storage.Storage) error {
		var err error
		rec, err = resolve(db, id)
		return err
	})
	return rec, err
}

func resolve(db *storage.Storage, id string) (*storage.Record, error) {
	if rec, err := db.Get(id); err == nil {
		return rec, nil
	} else if !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, err
	}

	records, err := db.List()
	if err != nil {
		return nil, err
	}
	var match *storage.Record
	for i := range records {
		if id != "" && strings.HasPrefix(records[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
			}
			match = &records[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return match, nil
}

// Remove deletes a record by ID or unique ID prefix.
func (v *Vault) Remove(id string) (*storage.Record, error) {
	var rec *storage.Record
	err := v.withStore(false, func(db *storage.Storage) error {
		var err error
		if rec, err = resolve(db, id); err != nil {
			return err
		}
		return db.Delete(rec.ID)
	})
	return rec, err
}

// Open decrypts a saved package with the level recorded for it.
// The result is logged to the sandbox session like any other decrypt.
func (v *Vault) Open(ctx context.Context, sb *Sandbox, passphrase []byte, id string) (string, error) {
	rec, err := v.Get(id)
	if err != nil {
		return "", err
	}
	return sb.DecryptAt(ctx, passphrase, rec.Package, rec.Level)
}

// Compact compacts the store to reclaim unused space.
func (v *Vault) Compact() error {
	return v.withStore(false, func(db *storage.Storage) error {
		return db.Compact()
	})
}

// StatusInfo summarises the store.
type StatusInfo struct {
	StoreID   string
	Count     int
	TotalSize int
	ByLevel   map[crypto.Level]int
	Modified  time.Time
	GitStatus *git.GitStatus
}

// Status reports store statistics and git integration. No passphrase needed.
func (v *Vault) Status() (*StatusInfo, error) {
	info := &StatusInfo{ByLevel: make(map[crypto.Level]int)}
	err := v.withStore(false, func(db *storage.Storage) error {
		id, err := db.GetOrCreateStoreID()
		if err != nil {
			return err
		}
		info.StoreID = id

		if info.Modified, err = db.GetModified(); err != nil {
			return err
		}

		records, err := db.List()
		if err != nil {
			return err
		}
		for _, rec := range records {
			info.Count++
			info.TotalSize += rec.Size()
			info.ByLevel[rec.Level]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(v.path)
	if err == nil {
		info.GitStatus = git.CheckStore(filepath.Dir(absPath), filepath.Base(absPath))
	}
	return info, nil
}
