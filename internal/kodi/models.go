// Package kodi provides a JSON-RPC client for a single Kodi host.
package kodi

import (
	"fmt"
	"time"
)

// dtFormat is the timestamp layout Kodi uses for lastplayed/dateadded.
const dtFormat = "2006-01-02 15:04:05"

// Platform identifies the operating system a Kodi host runs on.
// Values match Kodi's System.Platform info-boolean names.
type Platform string

const (
	PlatformAndroid Platform = "System.Platform.Android"
	PlatformDarwin  Platform = "System.Platform.Darwin"
	PlatformIOS     Platform = "System.Platform.IOS"
	PlatformLinux   Platform = "System.Platform.Linux"
	PlatformOSX     Platform = "System.Platform.OSX"
	PlatformTVOS    Platform = "System.Platform.TVOS"
	PlatformUWP     Platform = "System.Platform.UWP"
	PlatformWindows Platform = "System.Platform.Windows"
	PlatformUnknown Platform = "Unknown"
)

// platformFlags is the full indicator set queried during detection.
var platformFlags = []Platform{
	PlatformAndroid,
	PlatformDarwin,
	PlatformIOS,
	PlatformLinux,
	PlatformOSX,
	PlatformTVOS,
	PlatformUWP,
	PlatformWindows,
}

// IsPosix reports whether the platform uses posix path conventions.
// Unknown platforms are treated as non-posix so paths pass through
// the conservative windows conversion.
func (p Platform) IsPosix() bool {
	return p != PlatformWindows && p != PlatformUnknown && p != ""
}

// ResumeState is the resume point of a library item. Position and total are
// float64 values exactly as Kodi reports them; they are persisted and
// replayed without conversion.
type ResumeState struct {
	Position float64
	Total    float64
}

// WatchedState carries the user-specific state of one library entry.
type WatchedState struct {
	PlayCount  int
	LastPlayed time.Time
	DateAdded  time.Time
	Resume     ResumeState
}

// IsWatched reports whether this state represents a watched episode.
// Both a positive play count and a last-played timestamp are required.
func (w WatchedState) IsWatched() bool {
	return w.PlayCount > 0 && !w.LastPlayed.IsZero()
}

// LastPlayedString formats LastPlayed for Kodi, empty when unset.
func (w WatchedState) LastPlayedString() string {
	if w.LastPlayed.IsZero() {
		return ""
	}
	return w.LastPlayed.Format(dtFormat)
}

// DateAddedString formats DateAdded for Kodi, empty when unset.
func (w WatchedState) DateAddedString() string {
	if w.DateAdded.IsZero() {
		return ""
	}
	return w.DateAdded.Format(dtFormat)
}

// EpisodeKey is the stable identity of an episode. Kodi reassigns numeric
// episode ids on every rescan, so identity is the (show, season, episode)
// tuple and never the id.
type EpisodeKey struct {
	ShowID  int
	Season  int
	Episode int
}

// Episode is one library entry as Kodi reports it.
type Episode struct {
	ID        int // host-assigned, not stable across rescans
	ShowID    int
	File      string
	ShowTitle string
	Title     string
	Season    int
	Episode   int
	Watched   WatchedState
}

// Key returns the stable identity of the episode.
func (e Episode) Key() EpisodeKey {
	return EpisodeKey{ShowID: e.ShowID, Season: e.Season, Episode: e.Episode}
}

// SameEpisode reports whether two records describe the same logical episode,
// regardless of host-assigned id, file path, or titles.
func (e Episode) SameEpisode(other Episode) bool {
	return e.Key() == other.Key()
}

func (e Episode) String() string {
	return fmt.Sprintf("%s - S%02dE%02d - %s", e.ShowTitle, e.Season, e.Episode, e.Title)
}

// Show is one TV show entry as Kodi reports it.
type Show struct {
	ID    int
	File  string
	Title string
	Year  int
}

func (s Show) String() string {
	return fmt.Sprintf("%s (%d)", s.Title, s.Year)
}

// Source is a configured Kodi media source directory.
type Source struct {
	File  string
	Label string
}

// Player is an active Kodi player.
type Player struct {
	ID         int
	Type       string // "video", "audio", "picture"
	PlayerType string
}

// PlayerItem is the item an active player is playing.
type PlayerItem struct {
	ID    int
	Label string
	Type  string // "episode", "movie", ...
}

// PlayerState is a snapshot of an active player's progress.
type PlayerState struct {
	Position float64 // percentage
	Paused   bool
}

// DefaultNotificationImage is shown with notifications when no icon is set.
const DefaultNotificationImage = "https://raw.githubusercontent.com/Sonarr/Sonarr/develop/Logo/256.png"

// Notification is a transient GUI toast. Never persisted.
type Notification struct {
	Title       string
	Message     string
	DisplayTime time.Duration
	Image       string
}

// NewNotification builds a notification with default display time and icon.
func NewNotification(title, message string) Notification {
	return Notification{
		Title:       title,
		Message:     message,
		DisplayTime: 5 * time.Second,
		Image:       DefaultNotificationImage,
	}
}
