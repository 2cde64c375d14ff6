package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fanforge/fanforge/internal/curves"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/fanforge/fanforge/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketFan = "fan"

	// KeyPoints holds the serialized curve
	KeyPoints = "points"
	// KeySettings holds the scalar configuration fields
	KeySettings = "settings"
)

type Persistence interface {
	Init() error

	// LoadSettings returns the stored settings or os.ErrNotExist if nothing has been stored yet
	LoadSettings() (settings.Settings, error)
	SaveSettings(s settings.Settings) error
	DeleteSettings() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.dbPath, err)
	}
	return db, nil
}

// SaveSettings stores the curve and the scalar fields of s in a single transaction
func (p persistence) SaveSettings(s settings.Settings) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	doc := settings.Render(s)
	pointData, err := json.Marshal(doc.Points)
	if err != nil {
		return err
	}
	doc.Points = nil
	settingsData, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketFan))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		if err = b.Put([]byte(KeyPoints), pointData); err != nil {
			return err
		}
		return b.Put([]byte(KeySettings), settingsData)
	})
}

func (p persistence) LoadSettings() (settings.Settings, error) {
	db, err := p.openPersistence()
	if err != nil {
		return settings.Settings{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result settings.Settings
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketFan))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(KeySettings))
		if v == nil {
			return os.ErrNotExist
		}

		var doc settings.Document
		err := json.Unmarshal(v, &doc)
		if err != nil {
			ui.Warning("Unable to unmarshal saved settings: %v", err)
			return os.ErrNotExist
		}

		result = settings.FromDocument(doc, decodePoints(b.Get([]byte(KeyPoints))))
		return nil
	})

	return result, err
}

func (p persistence) DeleteSettings() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketFan))
		if b == nil {
			// no bucket yet
			return nil
		}
		if err := b.Delete([]byte(KeyPoints)); err != nil {
			return err
		}
		return b.Delete([]byte(KeySettings))
	})
}

// decodePoints reads at most curves.MaxPoints points from a serialized curve.
// Entries without a numeric t and p are skipped, unreadable data yields no points.
func decodePoints(data []byte) []curves.Point {
	if data == nil {
		return nil
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		ui.Warning("Unable to unmarshal saved curve: %v", err)
		return nil
	}

	var points []curves.Point
	for _, entry := range entries {
		if len(points) >= curves.MaxPoints {
			break
		}
		t, tOk := entry["t"].(float64)
		p, pOk := entry["p"].(float64)
		if !tOk || !pOk {
			continue
		}
		points = append(points, curves.Point{Temperature: t, Duty: p})
	}
	return points
}
