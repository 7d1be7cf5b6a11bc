// Package pool coordinates a prioritized list of Kodi hosts as one logical
// library. Mutating operations fail over host by host in priority order and
// stop at the first success; GUI refresh and notifications broadcast.
package pool

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"kodisync/internal/kodi"
	"kodisync/internal/playback"
)

//go:generate mockgen -destination mocks/mock_client.go -package mocks kodisync/internal/pool Client

// Client is the per-host surface the pool drives. *kodi.Client satisfies it.
type Client interface {
	Name() string
	Priority() int
	Ping(ctx context.Context) error
	Scanned() bool
	IsPlaying(ctx context.Context) (bool, error)

	ScanDirectory(ctx context.Context, directory string) error
	FullScan(ctx context.Context) error
	CleanLibrary(ctx context.Context) error

	AllEpisodes(ctx context.Context) ([]kodi.Episode, error)
	EpisodesByDir(ctx context.Context, directory string) ([]kodi.Episode, error)
	EpisodesByFile(ctx context.Context, filePath string) ([]kodi.Episode, error)
	RemoveEpisode(ctx context.Context, episodeID int) error
	SetWatchedState(ctx context.Context, ep kodi.Episode, newEpisodeID int) error

	ShowsByDir(ctx context.Context, directory string) ([]kodi.Show, error)
	RemoveShow(ctx context.Context, showID int) (*kodi.Show, error)

	ActivePlayers(ctx context.Context) ([]kodi.Player, error)
	PlayerItem(ctx context.Context, playerID int) (*kodi.PlayerItem, error)
	PlayerState(ctx context.Context, playerID int) (kodi.PlayerState, error)
	StopPlayer(ctx context.Context, playerID int) error
	PausePlayer(ctx context.Context, playerID int) error
	PlayEpisode(ctx context.Context, episodeID int, position float64) error

	UpdateGUI(ctx context.Context) error
	Notify(ctx context.Context, n kodi.Notification, force bool) error
}

const (
	defaultRetryDelay  = 5 * time.Second
	defaultSettleDelay = 2 * time.Second
	defaultIdlePoll    = time.Second
	removeShowPasses   = 3
)

// Pool owns the ordered list of live hosts.
type Pool struct {
	hosts []Client
	store *playback.Store
	log   *slog.Logger

	retryDelay  time.Duration // between exhausted scan/clean passes
	settleDelay time.Duration // before post-interruption notification
	idlePoll    time.Duration // while waiting for an idle host
	skipActive  bool
}

// Option configures a Pool.
type Option func(*Pool)

// WithRetryDelay sets the delay between exhausted failover passes.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Pool) { p.retryDelay = d }
}

// WithSettleDelay sets the pause before a playback-interruption toast.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pool) { p.settleDelay = d }
}

// WithSkipActive skips hosts that are currently playing for scans/cleans.
func WithSkipActive(skip bool) Option {
	return func(p *Pool) { p.skipActive = skip }
}

// WithIdlePoll sets the poll interval while waiting for an idle host.
func WithIdlePoll(d time.Duration) Option {
	return func(p *Pool) { p.idlePoll = d }
}

// New builds a pool over already-probed clients, ordered by priority.
func New(hosts []Client, store *playback.Store, log *slog.Logger, opts ...Option) *Pool {
	if log == nil {
		log = slog.Default()
	}
	sorted := make([]Client, len(hosts))
	copy(sorted, hosts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	p := &Pool{
		hosts:       sorted,
		store:       store,
		log:         log.With("component", "pool"),
		retryDelay:  defaultRetryDelay,
		settleDelay: defaultSettleDelay,
		idlePoll:    defaultIdlePoll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Hosts returns the live hosts in priority order.
func (p *Pool) Hosts() []Client { return p.hosts }

// HostNames returns a comma-separated list of live host names.
func (p *Pool) HostNames() string {
	names := ""
	for i, h := range p.hosts {
		if i > 0 {
			names += ", "
		}
		names += h.Name()
	}
	return names
}

func (p *Pool) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// skippable reports whether a host should be skipped this pass because it
// is actively playing.
func (p *Pool) skippable(ctx context.Context, h Client) bool {
	if !p.skipActive {
		return false
	}
	playing, err := h.IsPlaying(ctx)
	if err != nil {
		return false
	}
	if playing {
		p.log.Info("skipping active player", "host", h.Name())
	}
	return playing
}

// waitForIdleHost blocks until at least one host is not playing. Only
// meaningful when skipActive is set.
func (p *Pool) waitForIdleHost(ctx context.Context) error {
	if !p.skipActive {
		return nil
	}
	for {
		for _, h := range p.hosts {
			playing, err := h.IsPlaying(ctx)
			if err != nil || !playing {
				return nil
			}
		}
		p.log.Info("all hosts are playing, waiting for an idle host")
		if err := p.sleep(ctx, p.idlePoll); err != nil {
			return err
		}
	}
}

// firstSuccess runs op against each host in priority order and stops at the
// first success. When every host fails it waits retryDelay and repeats the
// whole pass; callers have no fallback once a scan or clean is requested,
// so the loop only gives up when ctx is canceled.
func (p *Pool) firstSuccess(ctx context.Context, name string, op func(Client) error) error {
	if err := p.waitForIdleHost(ctx); err != nil {
		return err
	}
	for {
		for _, h := range p.hosts {
			if p.skippable(ctx, h) {
				continue
			}
			if err := op(h); err != nil {
				p.log.Warn("host failed, trying next", "op", name, "host", h.Name(), "error", err)
				continue
			}
			return nil
		}
		p.log.Warn("no host completed operation, retrying", "op", name, "delay", p.retryDelay)
		if err := p.sleep(ctx, p.retryDelay); err != nil {
			return err
		}
	}
}

// diffEpisodes returns episodes present in after but not in before, compared
// by identity so host-assigned id churn does not create false positives.
func diffEpisodes(before, after []kodi.Episode) []kodi.Episode {
	seen := make(map[kodi.EpisodeKey]bool, len(before))
	for _, ep := range before {
		seen[ep.Key()] = true
	}
	var added []kodi.Episode
	for _, ep := range after {
		if !seen[ep.Key()] {
			added = append(added, ep)
		}
	}
	return added
}

// ScanDirectory scans one show directory on the first host that accepts,
// retrying the pool until one does, and returns the newly found episodes.
func (p *Pool) ScanDirectory(ctx context.Context, directory string) ([]kodi.Episode, error) {
	before, err := p.EpisodesByDir(ctx, directory)
	if err != nil {
		return nil, err
	}
	p.log.Info("scanning show directory", "directory", directory)
	if err := p.firstSuccess(ctx, "scan directory", func(h Client) error {
		return h.ScanDirectory(ctx, directory)
	}); err != nil {
		return nil, err
	}
	after, err := p.EpisodesByDir(ctx, directory)
	if err != nil {
		return nil, err
	}
	return diffEpisodes(before, after), nil
}

// FullScan scans the entire video library and returns the newly found
// episodes. Expensive for both the host and this process.
func (p *Pool) FullScan(ctx context.Context) ([]kodi.Episode, error) {
	before, err := p.AllEpisodes(ctx)
	if err != nil {
		return nil, err
	}
	p.log.Info("performing full library scan")
	if err := p.firstSuccess(ctx, "full scan", func(h Client) error {
		return h.FullScan(ctx)
	}); err != nil {
		return nil, err
	}
	after, err := p.AllEpisodes(ctx)
	if err != nil {
		return nil, err
	}
	return diffEpisodes(before, after), nil
}

// CleanLibrary cleans the library on the first host that accepts.
func (p *Pool) CleanLibrary(ctx context.Context) error {
	p.log.Info("cleaning library")
	return p.firstSuccess(ctx, "clean library", func(h Client) error {
		return h.CleanLibrary(ctx)
	})
}

// AllEpisodes returns the full episode list from the first responsive host.
// Hosts are assumed to share one library; results are never merged.
func (p *Pool) AllEpisodes(ctx context.Context) ([]kodi.Episode, error) {
	for _, h := range p.hosts {
		episodes, err := h.AllEpisodes(ctx)
		if err != nil {
			p.log.Warn("failed to get all episodes", "host", h.Name(), "error", err)
			continue
		}
		return episodes, nil
	}
	return nil, nil
}

// EpisodesByDir returns the first non-empty per-directory result.
func (p *Pool) EpisodesByDir(ctx context.Context, directory string) ([]kodi.Episode, error) {
	for _, h := range p.hosts {
		episodes, err := h.EpisodesByDir(ctx, directory)
		if err != nil {
			p.log.Warn("failed to get episodes by directory", "host", h.Name(), "error", err)
			continue
		}
		if len(episodes) > 0 {
			return episodes, nil
		}
	}
	return nil, nil
}

// EpisodesByFile returns the first non-empty per-file result.
func (p *Pool) EpisodesByFile(ctx context.Context, filePath string) ([]kodi.Episode, error) {
	for _, h := range p.hosts {
		episodes, err := h.EpisodesByFile(ctx, filePath)
		if err != nil {
			p.log.Warn("failed to get episodes by file", "host", h.Name(), "error", err)
			continue
		}
		if len(episodes) > 0 {
			return episodes, nil
		}
	}
	return nil, nil
}

// ShowExists returns the shows rooted under seriesPath, if any host knows
// of them.
func (p *Pool) ShowExists(ctx context.Context, seriesPath string) []kodi.Show {
	for _, h := range p.hosts {
		shows, err := h.ShowsByDir(ctx, seriesPath)
		if err != nil {
			continue
		}
		if len(shows) > 0 {
			return shows
		}
	}
	return nil
}

// RemoveEpisodes removes each episode on the first host that accepts,
// returning the ones actually removed.
func (p *Pool) RemoveEpisodes(ctx context.Context, episodes []kodi.Episode) []kodi.Episode {
	if len(episodes) == 0 {
		return nil
	}
	p.log.Info("removing episodes", "count", len(episodes))
	removed := make(map[kodi.EpisodeKey]bool, len(episodes))
	for _, h := range p.hosts {
		for _, ep := range episodes {
			if removed[ep.Key()] {
				continue
			}
			if err := h.RemoveEpisode(ctx, ep.ID); err != nil {
				p.log.Warn("failed to remove episode", "host", h.Name(), "episode", ep.String(), "error", err)
				continue
			}
			removed[ep.Key()] = true
		}
		if len(removed) == len(episodes) {
			break
		}
	}
	var out []kodi.Episode
	for _, ep := range episodes {
		if removed[ep.Key()] {
			out = append(out, ep)
		}
	}
	return out
}

// RemoveShow removes every show rooted under seriesPath. The host list is
// retried up to three passes for shows not yet removed; anything left after
// that is logged and abandoned.
func (p *Pool) RemoveShow(ctx context.Context, seriesPath string) []kodi.Show {
	var shows []kodi.Show
	for _, h := range p.hosts {
		found, err := h.ShowsByDir(ctx, seriesPath)
		if err != nil {
			p.log.Warn("failed to get shows", "host", h.Name(), "path", seriesPath, "error", err)
			continue
		}
		shows = found
		break
	}
	if len(shows) == 0 {
		p.log.Warn("no shows found to remove", "path", seriesPath)
		return nil
	}

	p.log.Info("removing shows", "path", seriesPath, "count", len(shows))
	removed := make(map[int]kodi.Show, len(shows))
	for pass := 0; pass < removeShowPasses && len(removed) < len(shows); pass++ {
		for _, h := range p.hosts {
			for _, show := range shows {
				if _, ok := removed[show.ID]; ok {
					continue
				}
				details, err := h.RemoveShow(ctx, show.ID)
				if err != nil {
					p.log.Warn("failed to remove show", "host", h.Name(), "show", show.Title, "error", err)
					continue
				}
				removed[show.ID] = *details
			}
			if len(removed) == len(shows) {
				break
			}
		}
	}

	var out []kodi.Show
	for _, show := range shows {
		if details, ok := removed[show.ID]; ok {
			out = append(out, details)
		} else {
			p.log.Error("giving up on show removal", "show", show.Title)
		}
	}
	return out
}

// CopyMetadata applies each removed episode's watched state to its matching
// new entry on the first host that accepts. Matching is by identity tuple;
// the host-assigned ids on either side are irrelevant.
func (p *Pool) CopyMetadata(ctx context.Context, oldEps, newEps []kodi.Episode) []kodi.Episode {
	if len(oldEps) == 0 || len(newEps) == 0 {
		return nil
	}
	p.log.Info("copying episode metadata", "count", len(newEps))
	applied := make(map[kodi.EpisodeKey]bool)
	var out []kodi.Episode
	for _, h := range p.hosts {
		for _, oldEp := range oldEps {
			for _, newEp := range newEps {
				if !oldEp.SameEpisode(newEp) || applied[newEp.Key()] {
					continue
				}
				if err := h.SetWatchedState(ctx, oldEp, newEp.ID); err != nil {
					p.log.Warn("failed to set watched state", "host", h.Name(), "episode", newEp.String(), "error", err)
					continue
				}
				applied[newEp.Key()] = true
				out = append(out, newEp)
			}
		}
		if len(applied) == len(newEps) {
			break
		}
	}
	return out
}
