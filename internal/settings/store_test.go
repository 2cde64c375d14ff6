package settings

import (
	"sync"
	"testing"

	"github.com/fanforge/fanforge/internal/curves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetReturnsCopy(t *testing.T) {
	// GIVEN
	store := NewStore(Default())

	// WHEN
	s := store.Get()
	s.Points[0].Duty = 99
	s.Mode = ModeOff

	// THEN
	assert.Equal(t, Default(), store.Get())
}

func TestStore_ApplyReplacesAndNotifies(t *testing.T) {
	// GIVEN
	store := NewStore(Default())
	var calls []Settings
	store.AddListener(func(previous Settings, current Settings) {
		assert.Equal(t, ModeAuto, previous.Mode)
		calls = append(calls, current)
	})
	body := `{"mode":"manual","smoothing_mode":"linear","points":[{"t":20,"p":20},{"t":50,"p":100}],
"min_pwm":0,"max_pwm":100,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100,"manual_pwm":35}`

	// WHEN
	result, err := store.Apply([]byte(body))

	// THEN
	require.NoError(t, err)
	assert.Equal(t, ModeManual, result.Mode)
	assert.Equal(t, 35.0, store.Get().ManualPwm)
	require.Len(t, calls, 1)
	assert.Equal(t, result, calls[0])
}

func TestStore_ApplyErrorKeepsSettings(t *testing.T) {
	// GIVEN
	initial := Default()
	initial.Points = []curves.Point{{Temperature: 30, Duty: 10}, {Temperature: 40, Duty: 60}, {Temperature: 70, Duty: 100}}
	store := NewStore(initial)
	notified := false
	store.AddListener(func(previous Settings, current Settings) {
		notified = true
	})
	bodies := []string{
		`{"mode":"auto","smoothing_mode":"linear","points":[{"t":20,"p":20}],"min_pwm":0,"max_pwm":100,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`,
		`{"mode":"auto","smoothing_mode":"linear","points":[{"t":50,"p":20},{"t":20,"p":100}],"min_pwm":0,"max_pwm":100,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`,
		`{"mode":"auto","smoothing_mode":"linear","points":[{"t":20,"p":20},{"t":50,"p":120}],"min_pwm":0,"max_pwm":100,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`,
		`{"mode":"auto","smoothing_mode":"linear","points":[{"t":20,"p":20},{"t":50,"p":100}],"min_pwm":50,"max_pwm":40,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`,
		`{"mode":"auto","smoothing_mode":"linear","points":[{"t":20,"p":20},{"t":50,"p":100}],"min_pwm":0,"max_pwm":100,"failsafe_temp":60,"failsafe_pwm":100}`,
		`not json`,
	}

	for _, body := range bodies {
		// WHEN
		_, err := store.Apply([]byte(body))

		// THEN
		assert.Error(t, err, body)
		assert.Equal(t, initial, store.Get())
	}
	assert.False(t, notified)
}

func TestStore_Replace(t *testing.T) {
	// GIVEN
	store := NewStore(Default())
	next := Default()
	next.Mode = "nonsense"
	next.MaxPwm = 250

	// WHEN
	store.Replace(next)

	// THEN
	assert.Equal(t, ModeAuto, store.Get().Mode)
	assert.Equal(t, 100.0, store.Get().MaxPwm)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	// GIVEN
	store := NewStore(Default())
	body := []byte(`{"mode":"auto","smoothing_mode":"smooth","points":[{"t":20,"p":20},{"t":35,"p":50},{"t":50,"p":100}],
"min_pwm":0,"max_pwm":100,"slew_pct_per_sec":10,"failsafe_temp":60,"failsafe_pwm":100}`)

	// WHEN
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Apply(body)
		}()
		go func() {
			defer wg.Done()
			s := store.Get()
			assert.True(t, len(s.Points) == 2 || len(s.Points) == 3)
		}()
	}
	wg.Wait()

	// THEN
	assert.Len(t, store.Get().Points, 3)
}
