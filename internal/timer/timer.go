package timer

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Mode is the pomodoro phase.
type Mode string

const (
	ModeStudy Mode = "study"
	ModeBreak Mode = "break"
)

// Config holds timer durations and the award rate.
type Config struct {
	StudyDuration   time.Duration
	BreakDuration   time.Duration
	PointsPerMinute int
}

// DefaultConfig returns the classic 25/5 pomodoro with 10 points per minute.
func DefaultConfig() Config {
	return Config{
		StudyDuration:   25 * time.Minute,
		BreakDuration:   5 * time.Minute,
		PointsPerMinute: 10,
	}
}

// Cue is played when a study block ends and a break begins.
type Cue interface {
	Play()
}

// BellCue rings the terminal bell.
type BellCue struct {
	W io.Writer
}

func (c BellCue) Play() {
	w := c.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprint(w, "\a")
}

// NopCue plays nothing.
type NopCue struct{}

func (NopCue) Play() {}

// TickResult reports what a single tick did.
type TickResult struct {
	// Points awarded by this tick (0 unless a minute boundary was crossed).
	Points int
	// Switched is true when the pomodoro changed mode on this tick.
	Switched bool
	Mode     Mode
}

// Tracker counts focused study seconds and runs the optional pomodoro
// cycle. It is driven by a one-second tick from the owner's event loop and
// is not safe for concurrent use.
type Tracker struct {
	cfg Config
	cue Cue

	elapsed int
	visible bool
	active  bool

	pomodoro bool
	mode     Mode
	timeLeft int

	awards int
}

// New creates a Tracker. The session starts visible but inactive; the owner
// marks it active when the study page is shown.
func New(cfg Config, cue Cue) *Tracker {
	if cfg.StudyDuration <= 0 {
		cfg.StudyDuration = DefaultConfig().StudyDuration
	}
	if cfg.BreakDuration <= 0 {
		cfg.BreakDuration = DefaultConfig().BreakDuration
	}
	if cfg.PointsPerMinute <= 0 {
		cfg.PointsPerMinute = DefaultConfig().PointsPerMinute
	}
	if cue == nil {
		cue = NopCue{}
	}
	return &Tracker{
		cfg:      cfg,
		cue:      cue,
		visible:  true,
		mode:     ModeStudy,
		timeLeft: seconds(cfg.StudyDuration),
	}
}

// Tick advances the tracker by one second of wall-clock time.
func (t *Tracker) Tick() TickResult {
	res := TickResult{Mode: t.mode}
	if !t.visible || !t.active {
		return res
	}

	if t.Running() {
		prev := t.elapsed
		t.elapsed++
		crossed := t.elapsed/60 - prev/60
		if crossed > 0 {
			t.awards += crossed
			res.Points = crossed * t.cfg.PointsPerMinute
		}
	}

	if t.pomodoro {
		if t.timeLeft <= 1 {
			t.switchMode()
			res.Switched = true
		} else {
			t.timeLeft--
		}
	}

	res.Mode = t.mode
	return res
}

func (t *Tracker) switchMode() {
	if t.mode == ModeStudy {
		t.mode = ModeBreak
		t.timeLeft = seconds(t.cfg.BreakDuration)
		t.cue.Play()
		return
	}
	t.mode = ModeStudy
	t.timeLeft = seconds(t.cfg.StudyDuration)
}

// SetVisible records whether the app is visible (terminal focused).
func (t *Tracker) SetVisible(v bool) { t.visible = v }

// SetActive records whether the study page is the one on screen.
func (t *Tracker) SetActive(a bool) { t.active = a }

// SetPomodoro enables or disables the pomodoro overlay. Either way the
// cycle restarts at a full study block.
func (t *Tracker) SetPomodoro(enabled bool) {
	t.pomodoro = enabled
	t.mode = ModeStudy
	t.timeLeft = seconds(t.cfg.StudyDuration)
}

// Running reports whether elapsed time is currently accruing.
func (t *Tracker) Running() bool {
	return t.visible && t.active && (!t.pomodoro || t.mode == ModeStudy)
}

func (t *Tracker) Elapsed() int          { return t.elapsed }
func (t *Tracker) Mode() Mode            { return t.mode }
func (t *Tracker) TimeLeft() int         { return t.timeLeft }
func (t *Tracker) PomodoroEnabled() bool { return t.pomodoro }
func (t *Tracker) Visible() bool         { return t.visible }
func (t *Tracker) Active() bool          { return t.active }

// Awards returns the number of minute awards granted so far.
func (t *Tracker) Awards() int { return t.awards }

// Status returns the user-facing status line.
func (t *Tracker) Status() string {
	switch {
	case !t.active:
		return "Timer paused. You are on another page."
	case !t.visible:
		return "Timer paused. Return to this tab to resume."
	case t.pomodoro && t.mode == ModeBreak:
		return "On a break! Points and timer are paused."
	default:
		return "Timer is running. You are earning points!"
	}
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatCountdown renders seconds as MM:SS.
func FormatCountdown(secs int) string {
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
