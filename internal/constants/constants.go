package constants

import "time"

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	DefaultNotifyPath  = "~/.config/habitual/notifications.db"
	DefaultConfigFile  = "~/.config/habitual/config.json"
	Version            = "v0.1.0"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ReminderTimeFormat is the 12-hour clock used by reminders ("h:mm AM/PM")
	ReminderTimeFormat = "3:04 PM"

	// HabitsStorageKey is the single slot holding the serialized habit list
	HabitsStorageKey = "habits"

	// DefaultReminderTime is the time given to a freshly added reminder
	DefaultReminderTime = "10:00 AM"

	// ReminderBody is the notification text for every habit reminder
	ReminderBody = "Time to complete your habit!"

	// NeutralColor is the heatmap color of a day with no completions
	NeutralColor = "#404040"

	// Heatmap shape
	HeatmapWeeks = 52
	DaysPerWeek  = 7

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitual-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitual"
	TrayExecutablePrefix   = "habitual-tray"

	// Notification channel
	DefaultChannelID    = "default"
	DefaultChannelName  = "Habit Reminders"
	DefaultChannelLight = "#22c55e"

	// Environment
	EnvDBConnection = "HABITUAL_DB_CONNECTION"
)

// Palette is the fixed set of habit colors.
var Palette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#10b981", // emerald
	"#14b8a6", // teal
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#6366f1", // indigo
	"#8b5cf6", // violet
	"#a855f7", // purple
	"#d946ef", // fuchsia
	"#ec4899", // pink
	"#f43f5e", // rose
	"#64748b", // slate
}

// DefaultColorIndex selects the palette entry used when no color is chosen.
const DefaultColorIndex = 3

// Icons is the fixed set of habit icon names.
var Icons = []string{
	// Core / Progress
	"circle-check", "calendar", "clock", "fire", "trophy", "bullseye", "chart-line",
	// Health & Fitness
	"heart", "shield-heart", "droplet", "utensils", "bed", "moon", "sun", "dumbbell",
	"person-running", "leaf",
	// Mind, Learning & Self-Care
	"brain", "book-open", "graduation-cap", "pen", "face-smile", "lotus-flower", "seedling",
	// Lifestyle
	"mug-saucer", "house", "music", "paw",
	// Productivity & Work
	"list-check", "stopwatch", "briefcase", "laptop", "envelope", "bell",
	// Personal Care & Finance
	"tooth", "shower", "wallet",
	// Environment & Values
	"recycle",
	// Social
	"users",
	// Travel & Leisure
	"plane", "suitcase", "map-location", "camera", "car", "bicycle",
	// Entertainment
	"tv", "gamepad", "masks-theater", "clapperboard", "palette",
}

// Weekdays lists reminder day abbreviations in display order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthNames are the calendar header names, January first.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
