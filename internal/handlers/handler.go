// Package handlers maps each Sonarr event onto the Kodi library operations
// that reconcile it: wait for metadata, mutate, clean, restore state, notify.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kodisync/internal/config"
	"kodisync/internal/kodi"
	"kodisync/internal/sonarr"
)

// ErrUnknownEvent indicates the event type could not be mapped to a handler.
var ErrUnknownEvent = errors.New("unknown event type")

// Library is the host-pool surface the handlers drive. *pool.Pool
// satisfies it.
type Library interface {
	ScanDirectory(ctx context.Context, directory string) ([]kodi.Episode, error)
	FullScan(ctx context.Context) ([]kodi.Episode, error)
	CleanLibrary(ctx context.Context) error
	EpisodesByDir(ctx context.Context, directory string) ([]kodi.Episode, error)
	EpisodesByFile(ctx context.Context, filePath string) ([]kodi.Episode, error)
	ShowExists(ctx context.Context, seriesPath string) []kodi.Show
	RemoveEpisodes(ctx context.Context, episodes []kodi.Episode) []kodi.Episode
	RemoveShow(ctx context.Context, seriesPath string) []kodi.Show
	CopyMetadata(ctx context.Context, oldEps, newEps []kodi.Episode) []kodi.Episode
	StopPlayback(ctx context.Context, ep kodi.Episode, reason string, storeResult bool)
	StartPlayback(ctx context.Context, ep kodi.Episode)
	UpdateGUIs(ctx context.Context)
	Notify(ctx context.Context, n kodi.Notification)
}

// Handler reconciles one Sonarr event against the Kodi library.
type Handler struct {
	env  *sonarr.Environment
	cfg  *config.Config
	lib  Library
	log  *slog.Logger
	gate *nfoGate
}

// Option configures a Handler.
type Option func(*Handler)

// WithNFOPollInterval overrides the metadata-gate poll interval.
func WithNFOPollInterval(d time.Duration) Option {
	return func(h *Handler) { h.gate.poll = d }
}

// New creates a handler for one event.
func New(env *sonarr.Environment, cfg *config.Config, lib Library, log *slog.Logger, opts ...Option) *Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		env:  env,
		cfg:  cfg,
		lib:  lib,
		log:  log.With("component", "handler"),
		gate: newNFOGate(time.Duration(cfg.Library.NFOTimeoutMinutes)*time.Minute, log),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Dispatch routes the parsed event to its reconciliation procedure.
func (h *Handler) Dispatch(ctx context.Context) error {
	h.log.Info("processing event", "event", h.env.EventType)
	switch h.env.EventType {
	case sonarr.EventGrab:
		return h.Grab(ctx)
	case sonarr.EventDownload:
		if h.env.IsUpgrade {
			return h.DownloadUpgrade(ctx)
		}
		return h.DownloadNew(ctx)
	case sonarr.EventRename:
		return h.Rename(ctx)
	case sonarr.EventEpisodeFileDelete:
		return h.EpisodeDelete(ctx)
	case sonarr.EventSeriesAdd:
		return h.SeriesAdd(ctx)
	case sonarr.EventSeriesDelete:
		return h.SeriesDelete(ctx)
	case sonarr.EventHealthIssue:
		return h.HealthIssue(ctx)
	case sonarr.EventHealthRestored:
		return h.HealthRestored(ctx)
	case sonarr.EventApplicationUpdate:
		return h.ApplicationUpdate(ctx)
	case sonarr.EventManualInteractionRequired:
		return h.ManualInteractionRequired(ctx)
	case sonarr.EventTest:
		return h.Test(ctx)
	default:
		return ErrUnknownEvent
	}
}

// recoverWithFullScan runs a library-wide scan when a targeted update
// could not be performed, honoring the clean-after-update setting. It
// sends no per-episode notifications; callers reach it only when they
// cannot tell which episodes changed, so the recovery is unconditional.
func (h *Handler) recoverWithFullScan(ctx context.Context) error {
	if _, err := h.lib.FullScan(ctx); err != nil {
		return err
	}
	if h.cfg.Library.CleanAfterUpdate {
		return h.lib.CleanLibrary(ctx)
	}
	return nil
}
