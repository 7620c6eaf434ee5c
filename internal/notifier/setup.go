package notifier

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/habitual/internal/constants"
)

// ErrNotInitialized is returned by gateway operations invoked before Setup.
var ErrNotInitialized = errors.New("notifications not initialized, call notifier.Setup first")

type Importance int

const (
	ImportanceDefault Importance = iota
	ImportanceHigh
)

// Presentation controls how a notification is shown while the app is in
// the foreground.
type Presentation struct {
	ShowAlert bool
	PlaySound bool
	SetBadge  bool
}

// Channel groups notifications that share delivery settings.
type Channel struct {
	ID               string
	Name             string
	Importance       Importance
	VibrationPattern []int // milliseconds, alternating wait and vibrate
	LightColor       string
}

type Config struct {
	Presentation Presentation
	Channel      Channel
}

// DefaultConfig is the configuration every reminder is delivered with.
func DefaultConfig() Config {
	return Config{
		Presentation: Presentation{ShowAlert: true, PlaySound: true, SetBadge: false},
		Channel: Channel{
			ID:               constants.DefaultChannelID,
			Name:             constants.DefaultChannelName,
			Importance:       ImportanceHigh,
			VibrationPattern: []int{0, 250, 250, 250},
			LightColor:       constants.DefaultChannelLight,
		},
	}
}

var (
	setupMu     sync.Mutex
	initialized bool
	active      Config
)

// Setup installs cfg as the notification configuration. Only the first call
// takes effect; later calls are ignored.
func Setup(cfg Config) error {
	setupMu.Lock()
	defer setupMu.Unlock()

	if initialized {
		return nil
	}
	if cfg.Channel.ID == "" {
		return errors.New("notification channel id cannot be empty")
	}
	if cfg.Channel.LightColor != "" {
		if _, err := colorful.Hex(cfg.Channel.LightColor); err != nil {
			return fmt.Errorf("invalid channel light color %q: %w", cfg.Channel.LightColor, err)
		}
	}

	active = cfg
	initialized = true
	return nil
}

// Initialized reports whether Setup has run.
func Initialized() bool {
	setupMu.Lock()
	defer setupMu.Unlock()
	return initialized
}

// ActiveConfig returns the configuration installed by Setup.
func ActiveConfig() (Config, error) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if !initialized {
		return Config{}, ErrNotInitialized
	}
	return active, nil
}

func resetForTest() {
	setupMu.Lock()
	defer setupMu.Unlock()
	initialized = false
	active = Config{}
}
