package pool

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kodisync/internal/kodi"
	"kodisync/internal/playback"
)

// StopPlayback stops every player on every host currently playing ep.
// Matching is by player item type "episode" and the host-assigned item id.
// For each stopped player the position and paused flag are captured and,
// when storeResult is set, persisted so the next invocation can resume it.
// The interruption notice is always forced past notification suppression.
func (p *Pool) StopPlayback(ctx context.Context, ep kodi.Episode, reason string, storeResult bool) {
	var stopped []Client
	for _, h := range p.hosts {
		players, err := h.ActivePlayers(ctx)
		if err != nil {
			p.log.Warn("failed to list players", "host", h.Name(), "error", err)
			continue
		}
		for _, player := range players {
			if player.Type != "video" {
				continue
			}
			item, err := h.PlayerItem(ctx, player.ID)
			if err != nil || item.Type != "episode" || item.ID != ep.ID {
				continue
			}

			state, err := h.PlayerState(ctx, player.ID)
			if err != nil {
				p.log.Warn("failed to capture player state", "host", h.Name(), "error", err)
				continue
			}
			p.log.Info("stopping playback", "host", h.Name(), "episode", ep.String(),
				"position", state.Position, "paused", state.Paused)
			if err := h.StopPlayer(ctx, player.ID); err != nil {
				p.log.Warn("failed to stop player", "host", h.Name(), "error", err)
				continue
			}

			if storeResult && p.store != nil {
				rec := &playback.Record{
					Host:      h.Name(),
					Key:       ep.Key(),
					EpisodeID: ep.ID,
					File:      ep.File,
					ShowTitle: ep.ShowTitle,
					Title:     ep.Title,
					Position:  state.Position,
					Paused:    state.Paused,
				}
				if err := p.store.Add(rec); err != nil {
					p.log.Error("failed to persist stopped playback", "host", h.Name(), "error", err)
				}
			}
			stopped = append(stopped, h)
		}
	}

	if len(stopped) == 0 {
		return
	}

	// Give the UI a moment to leave the player before showing the toast.
	if err := p.sleep(ctx, p.settleDelay); err != nil {
		return
	}
	n := kodi.NewNotification("Sonarr", reason)
	for _, h := range stopped {
		if err := h.Notify(ctx, n, true); err != nil {
			p.log.Warn("failed to send interruption notice", "host", h.Name(), "error", err)
		}
	}
}

// StartPlayback consumes persisted stopped-playback records matching ep's
// identity and reopens the player on each affected host at the saved
// position, re-applying the paused flag. Records are deleted as they are
// consumed; a second call finds nothing to restart.
func (p *Pool) StartPlayback(ctx context.Context, ep kodi.Episode) {
	if p.store == nil {
		return
	}
	for _, h := range p.hosts {
		records, err := p.store.Consume(h.Name(), ep.Key())
		if err != nil {
			p.log.Error("failed to read stopped playback", "host", h.Name(), "error", err)
			continue
		}
		for _, rec := range records {
			if err := h.PlayEpisode(ctx, ep.ID, rec.Position); err != nil {
				p.log.Warn("failed to restart playback", "host", h.Name(), "episode", ep.String(), "error", err)
				continue
			}
			if rec.Paused {
				p.pauseActiveVideo(ctx, h)
			}
		}
	}
}

func (p *Pool) pauseActiveVideo(ctx context.Context, h Client) {
	players, err := h.ActivePlayers(ctx)
	if err != nil {
		return
	}
	for _, player := range players {
		if player.Type != "video" {
			continue
		}
		if err := h.PausePlayer(ctx, player.ID); err != nil {
			p.log.Warn("failed to re-pause player", "host", h.Name(), "error", err)
		}
	}
}

// UpdateGUIs refreshes every host whose library was not already scanned
// this run; a scan refreshes the scanning host's own GUI as a side effect.
func (p *Pool) UpdateGUIs(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	count := 0
	for _, h := range p.hosts {
		if h.Scanned() {
			continue
		}
		count++
		h := h
		g.Go(func() error {
			if err := h.UpdateGUI(ctx); err != nil {
				p.log.Warn("failed to update GUI", "host", h.Name(), "error", err)
			}
			return nil
		})
	}
	p.log.Info("updating GUIs", "hosts", count)
	_ = g.Wait()
}

// Notify broadcasts a notification to every host; each host applies its own
// suppression rule.
func (p *Pool) Notify(ctx context.Context, n kodi.Notification) {
	p.log.Info("sending notification", "hosts", len(p.hosts), "title", n.Title)
	g, ctx := errgroup.WithContext(ctx)
	for _, h := range p.hosts {
		h := h
		g.Go(func() error {
			if err := h.Notify(ctx, n, false); err != nil {
				p.log.Warn("failed to notify", "host", h.Name(), "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
