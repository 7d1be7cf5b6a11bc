package kodi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Default operation budgets. Request timeouts are short; scan budgets are
// long because Kodi scans asynchronously and we poll for completion.
const (
	defaultTimeout   = 5 * time.Second
	episodesTimeout  = 60 * time.Second
	cleanTimeout     = 1800 * time.Second
	dirScanBudget    = 120 * time.Second
	fullScanBudget   = 1800 * time.Second
	cleanBudget      = 1800 * time.Second
	scanPollInterval = time.Second
	playStartBudget  = 5 * time.Second
)

// epProperties is the property set requested with every episode query.
var epProperties = []string{
	"lastplayed", "playcount", "file", "season", "episode",
	"tvshowid", "showtitle", "dateadded", "title", "resume",
}

var showProperties = []string{"title", "file", "year"}

// Client talks JSON-RPC to a single Kodi host.
type Client struct {
	name             string
	baseURL          string
	username         string
	password         string
	priority         int
	notificationsOff bool
	pathMaps         []PathMapping

	httpClient   *http.Client
	log          *slog.Logger
	reqID        atomic.Int64
	pollInterval time.Duration

	mu       sync.Mutex
	platform Platform // detected lazily, cached for the client's lifetime
	scanned  bool     // true once any scan/clean/remove completed this run
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a logger for the client.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log.With("host", c.name) }
}

// WithPathMaps sets the path mapping rules applied before any path is sent.
func WithPathMaps(maps []PathMapping) Option {
	return func(c *Client) { c.pathMaps = maps }
}

// WithScanPollInterval overrides the scan completion poll interval.
func WithScanPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// New creates a client for one Kodi host.
func New(name, address string, port int, username, password string, priority int, notificationsOff bool, opts ...Option) *Client {
	c := &Client{
		name:             name,
		baseURL:          fmt.Sprintf("http://%s:%d/jsonrpc", address, port),
		username:         username,
		password:         password,
		priority:         priority,
		notificationsOff: notificationsOff,
		httpClient:       &http.Client{},
		log:              slog.Default().With("host", name),
		pollInterval:     scanPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the configured host name.
func (c *Client) Name() string { return c.name }

// Priority returns the failover priority (lower is tried first).
func (c *Client) Priority() int { return c.priority }

// Scanned reports whether this host already refreshed its own library
// (and therefore its GUI) during the current run.
func (c *Client) Scanned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scanned
}

func (c *Client) markScanned() {
	c.mu.Lock()
	c.scanned = true
	c.mu.Unlock()
}

// --------------- wire ---------------

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// call performs one JSON-RPC request. Transport failures, HTTP errors, and
// remote-reported errors each surface as their own error kind; a nil error
// guarantees a non-nil result.
func (c *Client) call(ctx context.Context, method string, params any, timeout time.Duration) (json.RawMessage, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.reqID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TransportError{Op: method, Err: err, Timeout: true}
		}
		return nil, &TransportError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			c.log.Error("request unauthorized, check credentials")
		}
		return nil, &TransportError{Op: method, Status: resp.StatusCode}
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, &ProtocolError{Method: method}
	}
	if rpcResp.Error != nil {
		return nil, &ProtocolError{Method: method, Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}
	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return nil, &ProtocolError{Method: method}
	}
	return rpcResp.Result, nil
}

// expectString validates a result that must be an exact string, e.g. "OK".
func (c *Client) expectString(result json.RawMessage, method, want string) error {
	var got string
	if err := json.Unmarshal(result, &got); err != nil || got != want {
		return &ProtocolError{Method: method}
	}
	return nil
}

// --------------- system ---------------

// Ping probes host liveness. Any transport or protocol failure within the
// short request timeout reports the host as unreachable.
func (c *Client) Ping(ctx context.Context) error {
	result, err := c.call(ctx, "JSONRPC.Ping", nil, defaultTimeout)
	if err != nil {
		if IsTimeout(err) {
			c.log.Error("ping timed out, is the device powered on?")
		}
		return err
	}
	return c.expectString(result, "JSONRPC.Ping", "pong")
}

// DetectPlatform queries the host's platform indicator flags. The result is
// cached for the lifetime of the client; every path-mapping decision for
// this host depends on it.
func (c *Client) DetectPlatform(ctx context.Context) (Platform, error) {
	c.mu.Lock()
	if c.platform != "" {
		p := c.platform
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	flags := make([]string, len(platformFlags))
	for i, p := range platformFlags {
		flags[i] = string(p)
	}
	result, err := c.call(ctx, "XBMC.GetInfoBooleans", map[string]any{"booleans": flags}, defaultTimeout)
	if err != nil {
		return PlatformUnknown, fmt.Errorf("detect platform: %w", err)
	}

	var booleans map[string]bool
	if err := json.Unmarshal(result, &booleans); err != nil || len(booleans) == 0 {
		return PlatformUnknown, &ProtocolError{Method: "XBMC.GetInfoBooleans"}
	}

	detected := PlatformUnknown
	for _, p := range platformFlags {
		if booleans[string(p)] {
			detected = p
			break
		}
	}

	c.mu.Lock()
	c.platform = detected
	c.mu.Unlock()
	c.log.Debug("detected platform", "platform", string(detected))
	return detected, nil
}

// MapPath rewrites a Sonarr path into this host's view of the filesystem.
func (c *Client) MapPath(ctx context.Context, path string) (string, error) {
	p, err := c.DetectPlatform(ctx)
	if err != nil {
		return "", err
	}
	return mapPath(path, c.pathMaps, p), nil
}

// IsScanning reports whether a library scan is in progress.
func (c *Client) IsScanning(ctx context.Context) (bool, error) {
	params := map[string]any{"booleans": []string{"Library.IsScanning"}}
	result, err := c.call(ctx, "XBMC.GetInfoBooleans", params, defaultTimeout)
	if err != nil {
		return false, err
	}
	var booleans map[string]bool
	if err := json.Unmarshal(result, &booleans); err != nil || len(booleans) == 0 {
		return false, &ProtocolError{Method: "XBMC.GetInfoBooleans"}
	}
	return booleans["Library.IsScanning"], nil
}

// waitForScan polls the scanning flag until it clears or the budget elapses.
func (c *Client) waitForScan(ctx context.Context, budget time.Duration) (time.Duration, error) {
	start := time.Now()
	for {
		scanning, err := c.IsScanning(ctx)
		if err != nil {
			return time.Since(start), err
		}
		if !scanning {
			return time.Since(start), nil
		}
		if elapsed := time.Since(start); elapsed >= budget {
			return elapsed, &ScanTimeoutError{Elapsed: elapsed}
		}
		select {
		case <-ctx.Done():
			return time.Since(start), ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// --------------- library scans ---------------

// ScanDirectory scans one show directory and blocks until the host finishes.
func (c *Client) ScanDirectory(ctx context.Context, directory string) error {
	p, err := c.DetectPlatform(ctx)
	if err != nil {
		return err
	}
	mapped := ensureTrailingSep(mapPath(directory, c.pathMaps, p), p)

	c.log.Info("scanning directory", "directory", mapped)
	result, err := c.call(ctx, "VideoLibrary.Scan", map[string]any{"directory": mapped, "showdialogs": false}, defaultTimeout)
	if err != nil {
		return fmt.Errorf("scan %s: %w", mapped, err)
	}
	if err := c.expectString(result, "VideoLibrary.Scan", "OK"); err != nil {
		return err
	}

	elapsed, err := c.waitForScan(ctx, dirScanBudget)
	if err != nil {
		return err
	}
	c.log.Info("scan completed", "elapsed", elapsed.Round(time.Second))
	c.markScanned()
	return nil
}

// FullScan scans the entire video library and blocks until complete.
func (c *Client) FullScan(ctx context.Context) error {
	c.log.Info("performing full library scan")
	result, err := c.call(ctx, "VideoLibrary.Scan", map[string]any{"showdialogs": false}, defaultTimeout)
	if err != nil {
		return fmt.Errorf("full scan: %w", err)
	}
	if err := c.expectString(result, "VideoLibrary.Scan", "OK"); err != nil {
		return err
	}

	elapsed, err := c.waitForScan(ctx, fullScanBudget)
	if err != nil {
		return err
	}
	c.log.Info("full scan completed", "elapsed", elapsed.Round(time.Second))
	c.markScanned()
	return nil
}

// CleanLibrary purges library entries whose backing files no longer exist.
func (c *Client) CleanLibrary(ctx context.Context) error {
	c.log.Info("cleaning tvshow library")
	params := map[string]any{"showdialogs": false, "content": "tvshows"}
	result, err := c.call(ctx, "VideoLibrary.Clean", params, cleanTimeout)
	if err != nil {
		return fmt.Errorf("clean library: %w", err)
	}
	if err := c.expectString(result, "VideoLibrary.Clean", "OK"); err != nil {
		return err
	}

	if _, err := c.waitForScan(ctx, cleanBudget); err != nil {
		return err
	}
	c.markScanned()
	return nil
}

// UpdateGUI refreshes the host's widgets by scanning a nonexistent path.
// This is a documented quirk of the Kodi API, not a mistake: the scan is a
// no-op but the GUI reloads library views as a side effect.
func (c *Client) UpdateGUI(ctx context.Context) error {
	params := map[string]any{"directory": "/does_not_exist/", "showdialogs": false}
	c.log.Debug("updating GUI")
	result, err := c.call(ctx, "VideoLibrary.Scan", params, defaultTimeout)
	if err != nil {
		return fmt.Errorf("update gui: %w", err)
	}
	return c.expectString(result, "VideoLibrary.Scan", "OK")
}

// Notify shows a GUI toast. Hosts with notifications disabled drop it
// unless force is set; playback-interruption notices are always forced.
func (c *Client) Notify(ctx context.Context, n Notification, force bool) error {
	if c.notificationsOff && !force {
		c.log.Debug("notifications disabled, skipping", "title", n.Title)
		return nil
	}
	if n.DisplayTime <= 0 {
		n.DisplayTime = 5 * time.Second
	}
	if n.Image == "" {
		n.Image = DefaultNotificationImage
	}
	params := map[string]any{
		"title":       n.Title,
		"message":     n.Message,
		"displaytime": int(n.DisplayTime.Milliseconds()),
		"image":       n.Image,
	}
	c.log.Info("sending notification", "title", n.Title, "message", n.Message)
	result, err := c.call(ctx, "GUI.ShowNotification", params, defaultTimeout)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return c.expectString(result, "GUI.ShowNotification", "OK")
}

// --------------- episodes ---------------

type epResume struct {
	Position float64 `json:"position"`
	Total    float64 `json:"total"`
}

type epDetails struct {
	EpisodeID int      `json:"episodeid"`
	TVShowID  int      `json:"tvshowid"`
	File      string   `json:"file"`
	ShowTitle string   `json:"showtitle"`
	Title     string   `json:"title"`
	Season    int      `json:"season"`
	Episode   int      `json:"episode"`
	PlayCount int      `json:"playcount"`
	DateAdded string   `json:"dateadded"`
	LastPlay  string   `json:"lastplayed"`
	Resume    epResume `json:"resume"`
}

func parseDT(s string) time.Time {
	t, err := time.Parse(dtFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d epDetails) toEpisode() Episode {
	return Episode{
		ID:        d.EpisodeID,
		ShowID:    d.TVShowID,
		File:      d.File,
		ShowTitle: d.ShowTitle,
		Title:     d.Title,
		Season:    d.Season,
		Episode:   d.Episode,
		Watched: WatchedState{
			PlayCount:  d.PlayCount,
			LastPlayed: parseDT(d.LastPlay),
			DateAdded:  parseDT(d.DateAdded),
			Resume:     ResumeState{Position: d.Resume.Position, Total: d.Resume.Total},
		},
	}
}

func (c *Client) getEpisodes(ctx context.Context, filter any, timeout time.Duration) ([]Episode, error) {
	params := map[string]any{"properties": epProperties}
	if filter != nil {
		params["filter"] = filter
	}
	result, err := c.call(ctx, "VideoLibrary.GetEpisodes", params, timeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Episodes []epDetails `json:"episodes"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, &ProtocolError{Method: "VideoLibrary.GetEpisodes"}
	}

	episodes := make([]Episode, 0, len(payload.Episodes))
	for _, d := range payload.Episodes {
		episodes = append(episodes, d.toEpisode())
	}
	return episodes, nil
}

// AllEpisodes returns every episode in the library. Expensive; the request
// timeout is extended accordingly.
func (c *Client) AllEpisodes(ctx context.Context) ([]Episode, error) {
	c.log.Debug("getting all episodes")
	return c.getEpisodes(ctx, nil, episodesTimeout)
}

// EpisodesByDir returns all episodes whose path starts with the mapped
// directory.
func (c *Client) EpisodesByDir(ctx context.Context, directory string) ([]Episode, error) {
	mapped, err := c.MapPath(ctx, directory)
	if err != nil {
		return nil, err
	}
	c.log.Debug("getting episodes by directory", "directory", mapped)
	filter := map[string]any{"operator": "startswith", "field": "path", "value": mapped}
	return c.getEpisodes(ctx, filter, defaultTimeout)
}

// EpisodesByFile returns the episode entries backed by one file path.
func (c *Client) EpisodesByFile(ctx context.Context, filePath string) ([]Episode, error) {
	p, err := c.DetectPlatform(ctx)
	if err != nil {
		return nil, err
	}
	mapped := mapPath(filePath, c.pathMaps, p)
	filter := map[string]any{
		"and": []map[string]any{
			{"operator": "startswith", "field": "path", "value": dirName(mapped, p)},
			{"operator": "is", "field": "filename", "value": baseName(mapped, p)},
		},
	}
	c.log.Debug("getting episodes by file", "file", mapped)
	return c.getEpisodes(ctx, filter, defaultTimeout)
}

// EpisodeByID fetches one episode's details.
func (c *Client) EpisodeByID(ctx context.Context, episodeID int) (*Episode, error) {
	params := map[string]any{"episodeid": episodeID, "properties": epProperties}
	result, err := c.call(ctx, "VideoLibrary.GetEpisodeDetails", params, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Details *epDetails `json:"episodedetails"`
	}
	if err := json.Unmarshal(result, &payload); err != nil || payload.Details == nil {
		return nil, &ProtocolError{Method: "VideoLibrary.GetEpisodeDetails"}
	}
	ep := payload.Details.toEpisode()
	return &ep, nil
}

// RemoveEpisode deletes one episode entry from the library.
func (c *Client) RemoveEpisode(ctx context.Context, episodeID int) error {
	c.log.Debug("removing episode", "episode_id", episodeID)
	result, err := c.call(ctx, "VideoLibrary.RemoveEpisode", map[string]any{"episodeid": episodeID}, defaultTimeout)
	if err != nil {
		return fmt.Errorf("remove episode %d: %w", episodeID, err)
	}
	if err := c.expectString(result, "VideoLibrary.RemoveEpisode", "OK"); err != nil {
		return err
	}
	c.markScanned()
	return nil
}

// SetWatchedState pushes an episode's watched state onto a (new) episode id.
func (c *Client) SetWatchedState(ctx context.Context, ep Episode, newEpisodeID int) error {
	c.log.Debug("setting watched state", "episode", ep.String(), "new_id", newEpisodeID)
	params := map[string]any{
		"episodeid":  newEpisodeID,
		"playcount":  ep.Watched.PlayCount,
		"lastplayed": ep.Watched.LastPlayedString(),
		"dateadded":  ep.Watched.DateAddedString(),
		"resume": map[string]any{
			"position": ep.Watched.Resume.Position,
			"total":    ep.Watched.Resume.Total,
		},
	}
	result, err := c.call(ctx, "VideoLibrary.SetEpisodeDetails", params, defaultTimeout)
	if err != nil {
		return fmt.Errorf("set watched state: %w", err)
	}
	return c.expectString(result, "VideoLibrary.SetEpisodeDetails", "OK")
}

// --------------- shows ---------------

type showDetails struct {
	TVShowID int    `json:"tvshowid"`
	File     string `json:"file"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
}

func (d showDetails) toShow() Show {
	return Show{ID: d.TVShowID, File: d.File, Title: d.Title, Year: d.Year}
}

// ShowsByDir returns the shows rooted under a directory.
func (c *Client) ShowsByDir(ctx context.Context, directory string) ([]Show, error) {
	mapped, err := c.MapPath(ctx, directory)
	if err != nil {
		return nil, err
	}
	params := map[string]any{
		"properties": showProperties,
		"filter":     map[string]any{"operator": "startswith", "field": "path", "value": mapped},
	}
	c.log.Debug("getting shows by directory", "directory", mapped)
	result, err := c.call(ctx, "VideoLibrary.GetTVShows", params, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Shows []showDetails `json:"tvshows"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, &ProtocolError{Method: "VideoLibrary.GetTVShows"}
	}
	shows := make([]Show, 0, len(payload.Shows))
	for _, d := range payload.Shows {
		shows = append(shows, d.toShow())
	}
	return shows, nil
}

// ShowByID fetches one show's details.
func (c *Client) ShowByID(ctx context.Context, showID int) (*Show, error) {
	params := map[string]any{"tvshowid": showID, "properties": showProperties}
	result, err := c.call(ctx, "VideoLibrary.GetTVShowDetails", params, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Details *showDetails `json:"tvshowdetails"`
	}
	if err := json.Unmarshal(result, &payload); err != nil || payload.Details == nil {
		return nil, &ProtocolError{Method: "VideoLibrary.GetTVShowDetails"}
	}
	show := payload.Details.toShow()
	return &show, nil
}

// RemoveShow deletes a show from the library and returns its details as
// they were just before removal.
func (c *Client) RemoveShow(ctx context.Context, showID int) (*Show, error) {
	show, err := c.ShowByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	c.log.Debug("removing show", "show_id", showID, "title", show.Title)
	result, err := c.call(ctx, "VideoLibrary.RemoveTVShow", map[string]any{"tvshowid": showID}, defaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("remove show %d: %w", showID, err)
	}
	if err := c.expectString(result, "VideoLibrary.RemoveTVShow", "OK"); err != nil {
		return nil, err
	}
	c.markScanned()
	return show, nil
}

// Sources returns the host's configured video sources.
func (c *Client) Sources(ctx context.Context) ([]Source, error) {
	result, err := c.call(ctx, "Files.GetSources", map[string]any{"media": "video"}, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Sources []struct {
			File  string `json:"file"`
			Label string `json:"label"`
		} `json:"sources"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, &ProtocolError{Method: "Files.GetSources"}
	}
	sources := make([]Source, 0, len(payload.Sources))
	for _, s := range payload.Sources {
		sources = append(sources, Source{File: s.File, Label: s.Label})
	}
	return sources, nil
}

// --------------- players ---------------

// ActivePlayers lists the host's active players.
func (c *Client) ActivePlayers(ctx context.Context) ([]Player, error) {
	result, err := c.call(ctx, "Player.GetActivePlayers", nil, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var players []struct {
		PlayerID   int    `json:"playerid"`
		Type       string `json:"type"`
		PlayerType string `json:"playertype"`
	}
	if err := json.Unmarshal(result, &players); err != nil {
		return nil, &ProtocolError{Method: "Player.GetActivePlayers"}
	}
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, Player{ID: p.PlayerID, Type: p.Type, PlayerType: p.PlayerType})
	}
	return out, nil
}

// IsPlaying reports whether any player is active.
func (c *Client) IsPlaying(ctx context.Context) (bool, error) {
	players, err := c.ActivePlayers(ctx)
	if err != nil {
		return false, err
	}
	return len(players) > 0, nil
}

// PlayerItem returns the item a player is playing.
func (c *Client) PlayerItem(ctx context.Context, playerID int) (*PlayerItem, error) {
	result, err := c.call(ctx, "Player.GetItem", map[string]any{"playerid": playerID}, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Item *struct {
			ID    int    `json:"id"`
			Label string `json:"label"`
			Type  string `json:"type"`
		} `json:"item"`
	}
	if err := json.Unmarshal(result, &payload); err != nil || payload.Item == nil {
		return nil, &ProtocolError{Method: "Player.GetItem"}
	}
	return &PlayerItem{ID: payload.Item.ID, Label: payload.Item.Label, Type: payload.Item.Type}, nil
}

// PlayerState returns a player's position percentage and paused flag.
func (c *Client) PlayerState(ctx context.Context, playerID int) (PlayerState, error) {
	params := map[string]any{"playerid": playerID, "properties": []string{"percentage", "speed"}}
	result, err := c.call(ctx, "Player.GetProperties", params, defaultTimeout)
	if err != nil {
		return PlayerState{}, err
	}

	var payload struct {
		Percentage *float64 `json:"percentage"`
		Speed      *float64 `json:"speed"`
	}
	if err := json.Unmarshal(result, &payload); err != nil || payload.Percentage == nil {
		return PlayerState{}, &ProtocolError{Method: "Player.GetProperties"}
	}
	state := PlayerState{Position: *payload.Percentage}
	if payload.Speed != nil {
		state.Paused = *payload.Speed == 0
	}
	return state, nil
}

// StopPlayer stops an active player.
func (c *Client) StopPlayer(ctx context.Context, playerID int) error {
	result, err := c.call(ctx, "Player.Stop", map[string]any{"playerid": playerID}, defaultTimeout)
	if err != nil {
		return fmt.Errorf("stop player %d: %w", playerID, err)
	}
	return c.expectString(result, "Player.Stop", "OK")
}

// PausePlayer toggles a playing player into the paused state.
func (c *Client) PausePlayer(ctx context.Context, playerID int) error {
	result, err := c.call(ctx, "Player.PlayPause", map[string]any{"playerid": playerID, "play": false}, defaultTimeout)
	if err != nil {
		return fmt.Errorf("pause player %d: %w", playerID, err)
	}
	// Player.PlayPause returns the new speed map rather than "OK".
	var payload map[string]any
	if err := json.Unmarshal(result, &payload); err != nil || len(payload) == 0 {
		return &ProtocolError{Method: "Player.PlayPause"}
	}
	return nil
}

// PlayEpisode opens a player on an episode at a resume position, then polls
// up to 5s for playback to actually start.
func (c *Client) PlayEpisode(ctx context.Context, episodeID int, position float64) error {
	c.log.Info("restarting episode", "episode_id", episodeID, "position", position)
	params := map[string]any{
		"item":    map[string]any{"episodeid": episodeID},
		"options": map[string]any{"resume": position},
	}
	result, err := c.call(ctx, "Player.Open", params, defaultTimeout)
	if err != nil {
		return fmt.Errorf("open player: %w", err)
	}
	if err := c.expectString(result, "Player.Open", "OK"); err != nil {
		return err
	}

	start := time.Now()
	for time.Since(start) < playStartBudget {
		playing, err := c.IsPlaying(ctx)
		if err == nil && playing {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return fmt.Errorf("episode %d did not start playing within %s", episodeID, playStartBudget)
}
