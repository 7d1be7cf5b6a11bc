package handlers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultNFOPoll = time.Second

// nfoGate blocks until metadata scraper files exist on disk, so a library
// scan never imports an episode before its .nfo is written. The budget
// scales with the number of files being waited on.
type nfoGate struct {
	perFile time.Duration
	poll    time.Duration
	log     *slog.Logger
	exists  func(string) bool
}

func newNFOGate(perFile time.Duration, log *slog.Logger) *nfoGate {
	return &nfoGate{
		perFile: perFile,
		poll:    defaultNFOPoll,
		log:     log.With("component", "nfo"),
		exists:  fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// wait polls until every path exists or the budget expires. It returns
// the paths that never appeared; an empty return means all were found.
// Files found on an earlier poll stay found even if deleted afterward.
func (g *nfoGate) wait(ctx context.Context, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	budget := g.perFile * time.Duration(len(paths))
	deadline := time.Now().Add(budget)
	g.log.Info("waiting for metadata files", "count", len(paths), "budget", budget)

	found := make(map[string]bool, len(paths))
	for {
		for _, p := range paths {
			if !found[p] && g.exists(p) {
				g.log.Debug("metadata file present", "file", p)
				found[p] = true
			}
		}
		if len(found) == len(paths) {
			g.log.Info("all metadata files present")
			return nil
		}
		if !time.Now().Before(deadline) {
			missing := missingPaths(paths, found)
			g.log.Warn("timed out waiting for metadata files",
				"budget", budget, "missing", strings.Join(missing, ", "))
			return missing
		}
		select {
		case <-ctx.Done():
			return missingPaths(paths, found)
		case <-time.After(g.poll):
		}
	}
}

func missingPaths(paths []string, found map[string]bool) []string {
	var missing []string
	for _, p := range paths {
		if !found[p] {
			missing = append(missing, p)
		}
	}
	return missing
}

// episodeNFO derives the scraper file path for a video file.
func episodeNFO(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + ".nfo"
}

// showNFO derives the scraper file path for a series directory.
func showNFO(seriesPath string) string {
	return filepath.Join(seriesPath, "tvshow.nfo")
}
