package reminder

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const (
	// DefaultWindow is the half-width of the firing window around the
	// configured local time. Batch runs must be at most this far apart.
	DefaultWindow = 15 * time.Minute

	defaultTargetMinutes = 20 * 60
	dateKeyLayout        = "2006-01-02"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ParseClock converts "HH:MM" into minutes since local midnight. Anything
// that is not a valid two-digit 24h clock resolves to 20:00.
func ParseClock(s string) int {
	minutes, ok := parseClock(s)
	if !ok {
		return defaultTargetMinutes
	}
	return minutes
}

// ValidClock reports whether s is a strict, in-range "HH:MM" value.
func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}

func parseClock(s string) (int, bool) {
	if !clockPattern.MatchString(s) {
		return 0, false
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil || h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// LocalMinutes returns minutes since midnight of t in loc.
func LocalMinutes(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// DateKey returns the YYYY-MM-DD calendar date of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// Decision is the outcome of evaluating one reminder setting.
type Decision struct {
	InWindow         bool
	AlreadySentToday bool
	Due              bool

	DateKey       string
	LocalMinutes  int
	TargetMinutes int
}

// Gate decides whether a reminder setting should fire at a given instant.
// It is safe for concurrent use.
type Gate struct {
	window    time.Duration
	defaultTZ string

	locations sync.Map // name -> *time.Location
}

// NewGate creates a Gate. Non-positive window and empty defaultTZ fall back
// to 15 minutes and Asia/Tashkent.
func NewGate(window time.Duration, defaultTZ string) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	if defaultTZ == "" {
		defaultTZ = domain.DefaultReminderTimezone
	}
	return &Gate{window: window, defaultTZ: defaultTZ}
}

// Location resolves a timezone name, using the gate default when empty.
func (g *Gate) Location(name string) (*time.Location, error) {
	if name == "" {
		name = g.defaultTZ
	}
	if loc, ok := g.locations.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	g.locations.Store(name, loc)
	return loc, nil
}

// Evaluate reports whether setting is due at now.
func (g *Gate) Evaluate(setting domain.ReminderSetting, now time.Time) (Decision, error) {
	loc, err := g.Location(setting.Timezone)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{
		DateKey:       DateKey(now, loc),
		LocalMinutes:  LocalMinutes(now, loc),
		TargetMinutes: ParseClock(setting.DailyTimeLocal),
	}

	distance := d.LocalMinutes - d.TargetMinutes
	if distance < 0 {
		distance = -distance
	}
	d.InWindow = time.Duration(distance)*time.Minute < g.window

	if setting.LastSentAt != nil {
		d.AlreadySentToday = DateKey(*setting.LastSentAt, loc) == d.DateKey
	}

	d.Due = setting.Enabled && d.InWindow && !d.AlreadySentToday
	return d, nil
}
