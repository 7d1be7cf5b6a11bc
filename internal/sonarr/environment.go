// Package sonarr decodes the event Sonarr delivers through environment
// variables into a typed record. One event arrives per process invocation.
package sonarr

import (
	"os"
	"strconv"
	"strings"
)

// EventType is the closed set of Sonarr lifecycle events.
type EventType string

const (
	EventGrab                      EventType = "Grab"
	EventDownload                  EventType = "Download"
	EventRename                    EventType = "Rename"
	EventEpisodeFileDelete         EventType = "EpisodeFileDelete"
	EventSeriesAdd                 EventType = "SeriesAdd"
	EventSeriesDelete              EventType = "SeriesDelete"
	EventHealthIssue               EventType = "HealthIssue"
	EventHealthRestored            EventType = "HealthRestored"
	EventApplicationUpdate         EventType = "ApplicationUpdate"
	EventManualInteractionRequired EventType = "ManualInteractionRequired"
	EventTest                      EventType = "Test"
	EventUnknown                   EventType = "Unknown"
)

var eventTypes = []EventType{
	EventGrab, EventDownload, EventRename, EventEpisodeFileDelete,
	EventSeriesAdd, EventSeriesDelete, EventHealthIssue, EventHealthRestored,
	EventApplicationUpdate, EventManualInteractionRequired, EventTest,
}

// ParseEventType maps a raw value onto the closed event set,
// case-insensitively. Anything unrecognized is Unknown, never an error;
// unknown events are a terminal state, not a crash.
func ParseEventType(value string) EventType {
	for _, et := range eventTypes {
		if strings.EqualFold(string(et), strings.TrimSpace(value)) {
			return et
		}
	}
	return EventUnknown
}

// DeleteReasonUpgrade marks an episode-file delete that is part of a file
// replacement; the library must not be touched until the replacement lands.
const DeleteReasonUpgrade = "upgrade"

// Environment is the typed view of Sonarr's event variables.
type Environment struct {
	EventType      EventType
	InstanceName   string
	ApplicationURL string

	SeriesTitle        string
	SeriesYear         int
	SeriesPath         string
	SeriesDeletedFiles bool

	ReleaseSeasonNumber   int
	ReleaseEpisodeNumbers []int
	ReleaseEpisodeTitles  []string

	EpisodeFilePath          string
	EpisodeFilePreviousPaths []string
	EpisodeFileRelPaths      []string
	EpisodeFileDeleteReason  string
	DeletedPaths             []string
	IsUpgrade                bool

	HealthIssueMessage    string
	HealthIssueType       string
	HealthRestoredMessage string
	HealthRestoredType    string
	UpdateMessage         string
	UpdatePreviousVersion string
	UpdateNewVersion      string
}

// FromEnv reads the Sonarr_* environment surface into a typed record.
// Missing or unparseable values leave zero values; they never abort.
func FromEnv() *Environment {
	return &Environment{
		EventType:      ParseEventType(getEnv("Sonarr_EventType")),
		InstanceName:   getEnv("Sonarr_InstanceName"),
		ApplicationURL: getEnv("Sonarr_ApplicationUrl"),

		SeriesTitle:        getEnv("Sonarr_Series_Title"),
		SeriesYear:         getInt("Sonarr_Series_Year"),
		SeriesPath:         getEnv("Sonarr_Series_Path"),
		SeriesDeletedFiles: getBool("Sonarr_Series_DeletedFiles"),

		ReleaseSeasonNumber:   getInt("Sonarr_Release_SeasonNumber"),
		ReleaseEpisodeNumbers: getIntList("Sonarr_Release_EpisodeNumbers"),
		ReleaseEpisodeTitles:  getStringList("Sonarr_Release_EpisodeTitles"),

		EpisodeFilePath:          getEnv("Sonarr_EpisodeFile_Path"),
		EpisodeFilePreviousPaths: getStringList("Sonarr_EpisodeFile_PreviousPaths"),
		EpisodeFileRelPaths:      getStringList("Sonarr_EpisodeFile_RelativePaths"),
		EpisodeFileDeleteReason:  getEnv("Sonarr_EpisodeFile_DeleteReason"),
		DeletedPaths:             getStringList("Sonarr_DeletedPaths"),
		IsUpgrade:                getBool("Sonarr_IsUpgrade"),

		HealthIssueMessage:    getEnv("Sonarr_Health_Issue_Message"),
		HealthIssueType:       getEnv("Sonarr_Health_Issue_Type"),
		HealthRestoredMessage: getEnv("Sonarr_Health_Restored_Message"),
		HealthRestoredType:    getEnv("Sonarr_Health_Restored_Type"),
		UpdateMessage:         getEnv("Sonarr_Update_Message"),
		UpdatePreviousVersion: getEnv("Sonarr_Update_PreviousVersion"),
		UpdateNewVersion:      getEnv("Sonarr_Update_NewVersion"),
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getBool(key string) bool {
	return strings.EqualFold(getEnv(key), "true")
}

func getInt(key string) int {
	n, err := strconv.Atoi(getEnv(key))
	if err != nil {
		return 0
	}
	return n
}

// getStringList splits Sonarr's pipe-separated string lists.
func getStringList(key string) []string {
	raw := getEnv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getIntList splits Sonarr's comma-separated integer lists.
func getIntList(key string) []int {
	raw := getEnv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
