package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fanforge/fanforge/internal/curves"
	"github.com/fanforge/fanforge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestPersistence(t *testing.T) (Persistence, string) {
	dbPath := filepath.Join(t.TempDir(), "db", "fanforge.db")
	p := NewPersistence(dbPath)
	require.NoError(t, p.Init())
	return p, dbPath
}

func putRaw(t *testing.T, dbPath string, key string, value string) {
	db, err := bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketFan))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	require.NoError(t, err)
}

func TestPersistence_Init_CreatesDirectory(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "fanforge.db")
	p := NewPersistence(dbPath)

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

func TestPersistence_LoadSettings_NotExisting(t *testing.T) {
	// GIVEN
	p, _ := newTestPersistence(t)

	// WHEN
	_, err := p.LoadSettings()

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_SaveAndLoadSettings(t *testing.T) {
	// GIVEN
	p, _ := newTestPersistence(t)
	expected := settings.Default()
	expected.Mode = settings.ModeManual
	expected.Smoothing = settings.SmoothingSmooth
	expected.Points = []curves.Point{{Temperature: 25, Duty: 10}, {Temperature: 40, Duty: 50}, {Temperature: 60, Duty: 100}}
	expected.ManualPwm = 42

	// WHEN
	err := p.SaveSettings(expected)
	require.NoError(t, err)
	loaded, err := p.LoadSettings()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, expected, loaded)
}

func TestPersistence_DeleteSettings(t *testing.T) {
	// GIVEN
	p, _ := newTestPersistence(t)
	require.NoError(t, p.SaveSettings(settings.Default()))

	// WHEN
	err := p.DeleteSettings()

	// THEN
	assert.NoError(t, err)
	_, err = p.LoadSettings()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_LoadSettings_SkipsInvalidPoints(t *testing.T) {
	// GIVEN
	p, dbPath := newTestPersistence(t)
	require.NoError(t, p.SaveSettings(settings.Default()))
	putRaw(t, dbPath, KeyPoints, `[{"t":20,"p":20},{"t":"x","p":5},{"p":30},{"t":50,"p":100}]`)

	// WHEN
	loaded, err := p.LoadSettings()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []curves.Point{{Temperature: 20, Duty: 20}, {Temperature: 50, Duty: 100}}, loaded.Points)
}

func TestPersistence_LoadSettings_AtMostMaxPoints(t *testing.T) {
	// GIVEN
	p, dbPath := newTestPersistence(t)
	require.NoError(t, p.SaveSettings(settings.Default()))
	raw := "["
	for i := 0; i < 20; i++ {
		if i > 0 {
			raw += ","
		}
		raw += fmt.Sprintf(`{"t":%d,"p":50}`, 20+i)
	}
	raw += "]"
	putRaw(t, dbPath, KeyPoints, raw)

	// WHEN
	loaded, err := p.LoadSettings()

	// THEN
	require.NoError(t, err)
	assert.Len(t, loaded.Points, curves.MaxPoints)
}

func TestPersistence_CorruptCurveUsesFallback(t *testing.T) {
	// GIVEN
	p, dbPath := newTestPersistence(t)
	require.NoError(t, p.SaveSettings(settings.Default()))
	putRaw(t, dbPath, KeyPoints, `{not json`)

	// WHEN
	loaded, err := p.LoadSettings()

	// THEN
	require.NoError(t, err)
	assert.Empty(t, loaded.Points)
	assert.Equal(t, curves.FallbackPoints(), loaded.CurvePoints())
}

func TestPersistence_CorruptSettings(t *testing.T) {
	// GIVEN
	p, dbPath := newTestPersistence(t)
	putRaw(t, dbPath, KeySettings, `garbage`)

	// WHEN
	_, err := p.LoadSettings()

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}
