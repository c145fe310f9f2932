package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"syllabus/internal/domain"
)

// CurrentSchemaVersion is bumped on breaking changes to the storage format;
// a mismatch on open clears the collection so the next build starts fresh.
const CurrentSchemaVersion = 1

var (
	bucketUnits  = []byte("units")
	bucketBodies = []byte("bodies")
	bucketMeta   = []byte("meta")
	keyOrder     = []byte("lesson_order")
	keyStats     = []byte("collection_stats")
	keySchema    = []byte("schema_version")
)

// BoltStore persists a built unit collection in a bbolt database. Unit
// metadata and bodies live in separate buckets so listing stays cheap.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open collection db: %w", err)
	}

	s := &BoltStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *BoltStore) ensureSchema() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketUnits, bucketBodies, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}

		meta := tx.Bucket(bucketMeta)
		version := 0
		if data := meta.Get(keySchema); data != nil {
			json.Unmarshal(data, &version)
		}
		if version != 0 && version != CurrentSchemaVersion {
			if err := clearTx(tx); err != nil {
				return err
			}
			meta = tx.Bucket(bucketMeta)
		}

		data, err := json.Marshal(CurrentSchemaVersion)
		if err != nil {
			return err
		}
		return meta.Put(keySchema, data)
	})
}

type unitMeta struct {
	Title    string   `json:"title"`
	Theme    string   `json:"theme,omitempty"`
	Needs    []string `json:"needs,omitempty"`
	Readings []string `json:"readings,omitempty"`
	Path     string   `json:"path"`
	ModTime  int64    `json:"mod_time"`
	Position int      `json:"position"`
}

func (s *BoltStore) PutUnit(unit domain.Unit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := unitMeta{
			Title:    unit.Title,
			Theme:    unit.Theme,
			Needs:    unit.Needs,
			Readings: unit.Readings,
			Path:     unit.Path,
			ModTime:  unit.ModTime.Unix(),
			Position: unit.Position,
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketUnits).Put([]byte(unit.Slug), data); err != nil {
			return err
		}
		return tx.Bucket(bucketBodies).Put([]byte(unit.Slug), []byte(unit.Body))
	})
}

func (s *BoltStore) GetUnit(slug string) (domain.Unit, error) {
	var unit domain.Unit
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUnits).Get([]byte(slug))
		if data == nil {
			return fmt.Errorf("unit not found: %s", slug)
		}
		var meta unitMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		unit = fromMeta(slug, meta)
		unit.Body = string(tx.Bucket(bucketBodies).Get([]byte(slug)))
		return nil
	})
	return unit, err
}

func (s *BoltStore) DeleteUnit(slug string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketUnits).Delete([]byte(slug)); err != nil {
			return err
		}
		return tx.Bucket(bucketBodies).Delete([]byte(slug))
	})
}

// ListUnits returns all stored units without bodies, sorted by original
// input position.
func (s *BoltStore) ListUnits() ([]domain.Unit, error) {
	var units []domain.Unit
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUnits)
		return b.ForEach(func(k, v []byte) error {
			var meta unitMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			units = append(units, fromMeta(string(k), meta))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].Position < units[j].Position
	})
	return units, nil
}

func (s *BoltStore) PutOrder(slugs []string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(slugs)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyOrder, data)
	})
}

func (s *BoltStore) GetOrder() ([]string, error) {
	var slugs []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyOrder)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &slugs)
	})
	return slugs, err
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyStats, data)
	})
}

// Clear drops all stored data, keeping the schema version.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := clearTx(tx); err != nil {
			return err
		}
		data, err := json.Marshal(CurrentSchemaVersion)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keySchema, data)
	})
}

func clearTx(tx *bbolt.Tx) error {
	for _, b := range [][]byte{bucketUnits, bucketBodies, bucketMeta} {
		if err := tx.DeleteBucket(b); err != nil {
			return err
		}
		if _, err := tx.CreateBucket(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func fromMeta(slug string, meta unitMeta) domain.Unit {
	return domain.Unit{
		Slug:     slug,
		Title:    meta.Title,
		Theme:    meta.Theme,
		Needs:    meta.Needs,
		Readings: meta.Readings,
		Path:     meta.Path,
		ModTime:  time.Unix(meta.ModTime, 0),
		Position: meta.Position,
	}
}
