package pool

import (
	"context"
	"errors"
	"log/slog"

	"kodisync/internal/config"
	"kodisync/internal/kodi"
	"kodisync/internal/playback"
)

// ErrNoHosts indicates no configured host answered the liveness probe.
// There is nothing useful this process can do without one.
var ErrNoHosts = errors.New("no reachable kodi hosts")

// Connect builds clients for the enabled endpoints, probes each for
// liveness, and returns a pool over the ones that answered.
func Connect(ctx context.Context, cfg *config.Config, store *playback.Store, log *slog.Logger, opts ...Option) (*Pool, error) {
	if log == nil {
		log = slog.Default()
	}

	maps := make([]kodi.PathMapping, 0, len(cfg.Library.PathMapping))
	for _, m := range cfg.Library.PathMapping {
		maps = append(maps, kodi.PathMapping{From: m.Sonarr, To: m.Kodi})
	}

	var clients []Client
	for _, hc := range cfg.Hosts {
		if !hc.Enabled {
			log.Debug("skipping disabled host", "host", hc.Name)
			continue
		}
		client := kodi.New(hc.Name, hc.Address, hc.Port, hc.Username, hc.Password,
			hc.Priority, hc.DisableNotifications,
			kodi.WithPathMaps(maps), kodi.WithLogger(log))

		log.Debug("probing host", "host", hc.Name)
		if err := client.Ping(ctx); err != nil {
			log.Warn("host unreachable, excluding from pool", "host", hc.Name, "error", err)
			continue
		}
		clients = append(clients, client)
	}

	if len(clients) == 0 {
		return nil, ErrNoHosts
	}

	p := New(clients, store, log, append([]Option{WithSkipActive(cfg.Library.SkipActive)}, opts...)...)
	log.Info("connection established", "hosts", p.HostNames())
	return p, nil
}
