package handlers

import (
	"context"
	"fmt"
	"strings"

	"kodisync/internal/kodi"
	"kodisync/internal/sonarr"
)

// Playback interruption reasons shown on screen when an active player has
// to be stopped out from under the viewer.
const (
	reasonRename  = "Rename in progress. Please wait..."
	reasonUpgrade = "Processing Upgrade. Please Wait..."
	reasonDelete  = "Deleted Episode"
)

// Grab announces that Sonarr started downloading a release. No library
// state changes yet, so this is notification-only.
func (h *Handler) Grab(ctx context.Context) error {
	if !h.cfg.Notifications.OnGrab {
		h.log.Debug("grab notifications disabled")
		return nil
	}
	for i, num := range h.env.ReleaseEpisodeNumbers {
		title := ""
		if i < len(h.env.ReleaseEpisodeTitles) {
			title = h.env.ReleaseEpisodeTitles[i]
		}
		msg := fmt.Sprintf("%s - S%02dE%02d - %s",
			h.env.SeriesTitle, h.env.ReleaseSeasonNumber, num, title)
		h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Attempting Download", msg))
	}
	return nil
}

// DownloadNew imports a freshly downloaded episode. A brand-new show gets
// a full scan so Kodi picks up the series entry; an existing show gets a
// targeted directory scan.
func (h *Handler) DownloadNew(ctx context.Context) error {
	if h.cfg.Library.WaitForNFO {
		nfos := []string{episodeNFO(h.env.EpisodeFilePath), showNFO(h.env.SeriesPath)}
		if missing := h.gate.wait(ctx, nfos); len(missing) > 0 {
			h.log.Warn("metadata never appeared, scanning whole library instead")
			return h.recoverWithFullScan(ctx)
		}
	}

	var (
		newEps []kodi.Episode
		err    error
	)
	if len(h.lib.ShowExists(ctx, h.env.SeriesPath)) == 0 {
		h.log.Info("new show detected", "show", h.env.SeriesTitle)
		newEps, err = h.lib.FullScan(ctx)
	} else {
		newEps, err = h.scanSeriesDir(ctx)
	}
	if err != nil {
		return err
	}

	if h.cfg.Library.CleanAfterUpdate {
		if err := h.lib.CleanLibrary(ctx); err != nil {
			return err
		}
	}
	if len(newEps) == 0 {
		h.log.Warn("no new episodes found after scan", "file", h.env.EpisodeFilePath)
		return nil
	}

	h.lib.UpdateGUIs(ctx)
	if !h.cfg.Notifications.OnDownloadNew {
		return nil
	}
	for _, ep := range newEps {
		h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Downloaded New Episode", ep.String()))
	}
	return nil
}

// DownloadUpgrade replaces an existing episode file with a better one.
// The old library entries are removed first so the rescan creates fresh
// entries, then watched state and resume position carry over onto them.
func (h *Handler) DownloadUpgrade(ctx context.Context) error {
	if h.cfg.Library.WaitForNFO {
		nfos := []string{episodeNFO(h.env.EpisodeFilePath), showNFO(h.env.SeriesPath)}
		if missing := h.gate.wait(ctx, nfos); len(missing) > 0 {
			h.log.Warn("metadata never appeared, scanning whole library instead")
			return h.recoverWithFullScan(ctx)
		}
	}

	var removed []kodi.Episode
	for _, path := range h.env.DeletedPaths {
		old, err := h.lib.EpisodesByFile(ctx, path)
		if err != nil {
			h.log.Warn("lookup of replaced file failed", "file", path, "error", err)
			continue
		}
		removed = append(removed, h.lib.RemoveEpisodes(ctx, old)...)
	}
	if len(removed) == 0 && len(h.env.DeletedPaths) > 0 {
		// Stale entries may linger; watched state is lost for them.
		h.log.Warn("no old episodes removed, watched states cannot carry over")
		if !h.cfg.Library.CleanAfterUpdate {
			if err := h.lib.CleanLibrary(ctx); err != nil {
				return err
			}
		}
	}

	newEps, err := h.scanSeriesDir(ctx)
	if err != nil {
		return err
	}
	if h.cfg.Library.CleanAfterUpdate {
		if err := h.lib.CleanLibrary(ctx); err != nil {
			return err
		}
	}

	h.lib.CopyMetadata(ctx, removed, newEps)
	h.lib.UpdateGUIs(ctx)
	for _, ep := range newEps {
		h.lib.StartPlayback(ctx, ep)
	}

	if !h.cfg.Notifications.OnDownloadUpgrade {
		return nil
	}
	for _, ep := range newEps {
		h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Upgraded Episode", ep.String()))
	}
	return nil
}

// Rename re-imports episodes whose files moved on disk. Anything playing
// from the old paths is stopped first and resumed on the new entries.
func (h *Handler) Rename(ctx context.Context) error {
	if h.cfg.Library.WaitForNFO {
		nfos := make([]string, 0, len(h.env.EpisodeFileRelPaths)+1)
		for _, rel := range h.env.EpisodeFileRelPaths {
			nfos = append(nfos, episodeNFO(joinSeriesPath(h.env.SeriesPath, rel)))
		}
		nfos = append(nfos, showNFO(h.env.SeriesPath))
		if missing := h.gate.wait(ctx, nfos); len(missing) > 0 {
			h.log.Warn("metadata never appeared, scanning whole library instead")
			return h.recoverWithFullScan(ctx)
		}
	}

	var old []kodi.Episode
	for _, path := range h.env.EpisodeFilePreviousPaths {
		eps, err := h.lib.EpisodesByFile(ctx, path)
		if err != nil {
			h.log.Warn("lookup of previous file failed", "file", path, "error", err)
			continue
		}
		old = append(old, eps...)
	}
	for _, ep := range old {
		h.lib.StopPlayback(ctx, ep, reasonRename, true)
	}
	removed := h.lib.RemoveEpisodes(ctx, old)

	newEps, err := h.scanSeriesDir(ctx)
	if err != nil {
		return err
	}
	if h.cfg.Library.CleanAfterUpdate {
		if err := h.lib.CleanLibrary(ctx); err != nil {
			return err
		}
	}

	h.lib.CopyMetadata(ctx, removed, newEps)
	h.lib.UpdateGUIs(ctx)
	for _, ep := range newEps {
		h.lib.StartPlayback(ctx, ep)
	}

	if !h.cfg.Notifications.OnRename {
		return nil
	}
	for _, ep := range newEps {
		h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Renamed Episode", ep.String()))
	}
	return nil
}

// EpisodeDelete removes an episode's library entry. Deletes that are part
// of an upgrade only park active playback; the Download event that follows
// does the library work.
func (h *Handler) EpisodeDelete(ctx context.Context) error {
	eps, err := h.lib.EpisodesByFile(ctx, h.env.EpisodeFilePath)
	if err != nil {
		return err
	}

	if strings.EqualFold(h.env.EpisodeFileDeleteReason, sonarr.DeleteReasonUpgrade) {
		h.log.Info("delete is part of an upgrade, leaving library untouched")
		for _, ep := range eps {
			h.lib.StopPlayback(ctx, ep, reasonUpgrade, true)
		}
		return nil
	}

	for _, ep := range eps {
		h.lib.StopPlayback(ctx, ep, reasonDelete, false)
	}
	removed := h.lib.RemoveEpisodes(ctx, eps)
	if len(removed) == 0 && len(eps) > 0 {
		h.log.Warn("no episodes removed, library may hold stale entries")
		if !h.cfg.Library.CleanAfterUpdate {
			if err := h.lib.CleanLibrary(ctx); err != nil {
				return err
			}
		}
	}
	if h.cfg.Library.CleanAfterUpdate {
		if err := h.lib.CleanLibrary(ctx); err != nil {
			return err
		}
	}

	h.lib.UpdateGUIs(ctx)
	if !h.cfg.Notifications.OnDelete {
		return nil
	}
	for _, ep := range removed {
		h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Deleted Episode", ep.String()))
	}
	return nil
}

// SeriesAdd announces a newly tracked show. Files arrive later through
// Download events, so no library mutation happens here.
func (h *Handler) SeriesAdd(ctx context.Context) error {
	if !h.cfg.Notifications.OnSeriesAdd {
		h.log.Debug("series-add notifications disabled")
		return nil
	}
	msg := fmt.Sprintf("%s (%d)", h.env.SeriesTitle, h.env.SeriesYear)
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Series Added", msg))
	return nil
}

// SeriesDelete removes a show and its episodes from the library, but only
// when Sonarr also deleted the files; otherwise the entries are still valid.
func (h *Handler) SeriesDelete(ctx context.Context) error {
	if !h.env.SeriesDeletedFiles {
		h.log.Info("series files kept on disk, leaving library untouched",
			"show", h.env.SeriesTitle)
		return nil
	}

	eps, err := h.lib.EpisodesByDir(ctx, h.env.SeriesPath)
	if err != nil {
		return err
	}
	h.lib.RemoveEpisodes(ctx, eps)
	h.lib.RemoveShow(ctx, h.env.SeriesPath)

	if h.cfg.Library.CleanAfterUpdate {
		if err := h.lib.CleanLibrary(ctx); err != nil {
			return err
		}
	}
	h.lib.UpdateGUIs(ctx)

	if !h.cfg.Notifications.OnSeriesDelete {
		return nil
	}
	msg := fmt.Sprintf("%s (%d)", h.env.SeriesTitle, h.env.SeriesYear)
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr Deleted Show", msg))
	return nil
}

// HealthIssue surfaces a Sonarr health warning on screen.
func (h *Handler) HealthIssue(ctx context.Context) error {
	if !h.cfg.Notifications.OnHealthIssue {
		h.log.Debug("health-issue notifications disabled")
		return nil
	}
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Health Issue", h.env.HealthIssueMessage))
	return nil
}

// HealthRestored announces that a previously reported issue cleared.
func (h *Handler) HealthRestored(ctx context.Context) error {
	if !h.cfg.Notifications.OnHealthRestored {
		h.log.Debug("health-restored notifications disabled")
		return nil
	}
	msg := h.env.HealthRestoredMessage + " Resolved"
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Health Restored", msg))
	return nil
}

// ApplicationUpdate announces that Sonarr updated itself.
func (h *Handler) ApplicationUpdate(ctx context.Context) error {
	if !h.cfg.Notifications.OnApplicationUpdate {
		h.log.Debug("application-update notifications disabled")
		return nil
	}
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Application Update", h.env.UpdateMessage))
	return nil
}

// ManualInteractionRequired tells the viewer Sonarr is stuck on an import
// that needs a human decision.
func (h *Handler) ManualInteractionRequired(ctx context.Context) error {
	if !h.cfg.Notifications.OnManualInteractionRequired {
		h.log.Debug("manual-interaction notifications disabled")
		return nil
	}
	msg := fmt.Sprintf("Sonarr needs help with %s (%d)", h.env.SeriesTitle, h.env.SeriesYear)
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Manual Interaction Required", msg))
	return nil
}

// Test answers Sonarr's connection test hook.
func (h *Handler) Test(ctx context.Context) error {
	h.log.Info("test event received", "instance", h.env.InstanceName)
	if !h.cfg.Notifications.OnTest {
		return nil
	}
	h.lib.Notify(ctx, kodi.NewNotification("Sonarr - Testing", "Test Passed"))
	return nil
}

// scanSeriesDir runs the targeted scan for the event's series directory,
// widening to a full scan when the targeted one turns up nothing and the
// fallback is enabled.
func (h *Handler) scanSeriesDir(ctx context.Context) ([]kodi.Episode, error) {
	newEps, err := h.lib.ScanDirectory(ctx, h.env.SeriesPath)
	if err != nil {
		return nil, err
	}
	if len(newEps) == 0 && h.cfg.Library.FullScanFallback {
		h.log.Warn("directory scan found nothing, scanning whole library")
		return h.lib.FullScan(ctx)
	}
	return newEps, nil
}

// joinSeriesPath appends a Sonarr relative path to the series directory.
// Sonarr reports both in its own path flavor, so a plain separator join
// is all that is needed; host-side mapping happens later.
func joinSeriesPath(seriesPath, rel string) string {
	sep := "/"
	if strings.Contains(seriesPath, "\\") {
		sep = "\\"
	}
	return strings.TrimRight(seriesPath, sep) + sep + strings.TrimLeft(rel, "/\\")
}
