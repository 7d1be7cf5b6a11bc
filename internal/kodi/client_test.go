package kodi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type rpcCall struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     int64           `json:"id"`
}

// clientForURL builds a Client pointed at a test server.
func clientForURL(t *testing.T, rawURL string, notificationsOff bool, opts ...Option) *Client {
	t.Helper()
	host, portStr, err := net.SplitHostPort(rawURL[len("http://"):])
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	opts = append([]Option{WithLogger(testLogger()), WithScanPollInterval(time.Millisecond)}, opts...)
	return New("test", host, port, "kodi", "secret", 0, notificationsOff, opts...)
}

// newTestClient runs a fake JSON-RPC endpoint and a client against it.
func newTestClient(t *testing.T, handle func(r *http.Request, call rpcCall) (any, *rpcError), opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call rpcCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		result, rpcErr := handle(r, call)

		resp := map[string]any{"jsonrpc": "2.0", "id": call.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return clientForURL(t, srv.URL, false, opts...)
}

// linuxBooleans answers a GetInfoBooleans query as a Linux host would.
func linuxBooleans(params json.RawMessage) map[string]bool {
	var p struct {
		Booleans []string `json:"booleans"`
	}
	_ = json.Unmarshal(params, &p)
	out := make(map[string]bool, len(p.Booleans))
	for _, b := range p.Booleans {
		out[b] = b == string(PlatformLinux)
	}
	return out
}

func TestPing(t *testing.T) {
	var gotUser, gotPass string
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		gotUser, gotPass, _ = r.BasicAuth()
		require.Equal(t, "JSONRPC.Ping", call.Method)
		return "pong", nil
	})

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "kodi", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestPingUnexpectedResult(t *testing.T) {
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		return "OK", nil
	})

	err := c.Ping(context.Background())
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestUnauthorizedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	c := clientForURL(t, srv.URL, false)

	err := c.Ping(context.Background())
	assert.True(t, IsUnauthorized(err))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnauthorized, te.Status)
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := clientForURL(t, srv.URL, false)
	srv.Close()

	err := c.Ping(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.False(t, IsUnauthorized(err))
}

func TestRemoteError(t *testing.T) {
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		return nil, &rpcError{Code: -32601, Message: "Method not found."}
	})

	err := c.Ping(context.Background())
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, -32601, pe.Code)
	assert.Equal(t, "Method not found.", pe.Message)
}

func TestNullResult(t *testing.T) {
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		return nil, nil
	})

	err := c.Ping(context.Background())
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestDetectPlatformCached(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		calls++
		return linuxBooleans(call.Params), nil
	})

	p, err := c.DetectPlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlatformLinux, p)

	p, err = c.DetectPlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlatformLinux, p)
	assert.Equal(t, 1, calls, "platform must be detected once and cached")
}

func TestScanDirectory(t *testing.T) {
	var scannedDir string
	polls := 0
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		switch call.Method {
		case "XBMC.GetInfoBooleans":
			var p struct {
				Booleans []string `json:"booleans"`
			}
			require.NoError(t, json.Unmarshal(call.Params, &p))
			if len(p.Booleans) == 1 && p.Booleans[0] == "Library.IsScanning" {
				polls++
				// Scan in progress for the first two polls.
				return map[string]bool{"Library.IsScanning": polls <= 2}, nil
			}
			return linuxBooleans(call.Params), nil
		case "VideoLibrary.Scan":
			var p struct {
				Directory string `json:"directory"`
			}
			require.NoError(t, json.Unmarshal(call.Params, &p))
			scannedDir = p.Directory
			return "OK", nil
		default:
			t.Fatalf("unexpected method %s", call.Method)
			return nil, nil
		}
	}, WithPathMaps([]PathMapping{{From: "/data/tv", To: "/mnt/tv"}}))

	require.False(t, c.Scanned())
	require.NoError(t, c.ScanDirectory(context.Background(), "/data/tv/Show"))

	assert.Equal(t, "/mnt/tv/Show/", scannedDir, "directory must be mapped and end with a separator")
	assert.GreaterOrEqual(t, polls, 3, "must poll until the scanning flag clears")
	assert.True(t, c.Scanned())
}

func TestEpisodesByDir(t *testing.T) {
	var filter map[string]any
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		switch call.Method {
		case "XBMC.GetInfoBooleans":
			return linuxBooleans(call.Params), nil
		case "VideoLibrary.GetEpisodes":
			var p struct {
				Filter map[string]any `json:"filter"`
			}
			require.NoError(t, json.Unmarshal(call.Params, &p))
			filter = p.Filter
			return map[string]any{
				"episodes": []map[string]any{{
					"episodeid":  12,
					"tvshowid":   3,
					"file":       "/mnt/tv/Show/S01E01.mkv",
					"showtitle":  "Show",
					"title":      "Pilot",
					"season":     1,
					"episode":    1,
					"playcount":  2,
					"lastplayed": "2024-03-01 20:15:30",
					"dateadded":  "2024-01-15 08:00:00",
					"resume":     map[string]any{"position": 42.5, "total": 100.0},
				}},
			}, nil
		default:
			t.Fatalf("unexpected method %s", call.Method)
			return nil, nil
		}
	}, WithPathMaps([]PathMapping{{From: "/data/tv", To: "/mnt/tv"}}))

	episodes, err := c.EpisodesByDir(context.Background(), "/data/tv/Show")
	require.NoError(t, err)
	require.Len(t, episodes, 1)

	assert.Equal(t, "startswith", filter["operator"])
	assert.Equal(t, "/mnt/tv/Show", filter["value"])

	ep := episodes[0]
	assert.Equal(t, 12, ep.ID)
	assert.Equal(t, EpisodeKey{ShowID: 3, Season: 1, Episode: 1}, ep.Key())
	assert.Equal(t, "Pilot", ep.Title)
	assert.True(t, ep.Watched.IsWatched())
	assert.Equal(t, 42.5, ep.Watched.Resume.Position)
	assert.Equal(t, "2024-03-01 20:15:30", ep.Watched.LastPlayedString())
}

func TestEpisodesByFileFilter(t *testing.T) {
	var filter map[string]any
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		switch call.Method {
		case "XBMC.GetInfoBooleans":
			return linuxBooleans(call.Params), nil
		case "VideoLibrary.GetEpisodes":
			var p struct {
				Filter map[string]any `json:"filter"`
			}
			require.NoError(t, json.Unmarshal(call.Params, &p))
			filter = p.Filter
			return map[string]any{"episodes": []map[string]any{}}, nil
		default:
			t.Fatalf("unexpected method %s", call.Method)
			return nil, nil
		}
	})

	_, err := c.EpisodesByFile(context.Background(), "/mnt/tv/Show/S01E01.mkv")
	require.NoError(t, err)

	and, ok := filter["and"].([]any)
	require.True(t, ok)
	require.Len(t, and, 2)
	dir := and[0].(map[string]any)
	file := and[1].(map[string]any)
	assert.Equal(t, "/mnt/tv/Show", dir["value"])
	assert.Equal(t, "S01E01.mkv", file["value"])
}

func TestEpisodeByID(t *testing.T) {
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		require.Equal(t, "VideoLibrary.GetEpisodeDetails", call.Method)
		var p struct {
			EpisodeID int `json:"episodeid"`
		}
		require.NoError(t, json.Unmarshal(call.Params, &p))
		require.Equal(t, 12, p.EpisodeID)
		return map[string]any{
			"episodedetails": map[string]any{
				"episodeid": 12, "tvshowid": 3, "season": 1, "episode": 1,
				"showtitle": "Show", "title": "Pilot",
			},
		}, nil
	})

	ep, err := c.EpisodeByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, EpisodeKey{ShowID: 3, Season: 1, Episode: 1}, ep.Key())
	assert.Equal(t, "Pilot", ep.Title)
}

func TestSources(t *testing.T) {
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		require.Equal(t, "Files.GetSources", call.Method)
		return map[string]any{
			"sources": []map[string]any{
				{"file": "/mnt/tv/", "label": "TV Shows"},
				{"file": "/mnt/movies/", "label": "Movies"},
			},
		}, nil
	})

	sources, err := c.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "TV Shows", sources[0].Label)
	assert.Equal(t, "/mnt/tv/", sources[0].File)
}

func TestPlayerState(t *testing.T) {
	speed := 0.0
	c := newTestClient(t, func(r *http.Request, call rpcCall) (any, *rpcError) {
		require.Equal(t, "Player.GetProperties", call.Method)
		return map[string]any{"percentage": 42.5, "speed": speed}, nil
	})

	state, err := c.PlayerState(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 42.5, state.Position)
	assert.True(t, state.Paused, "speed 0 means paused")

	speed = 1.0
	state, err = c.PlayerState(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, state.Paused)
}

func TestNotifySuppression(t *testing.T) {
	calls := 0
	var displayTime float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call rpcCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		require.Equal(t, "GUI.ShowNotification", call.Method)
		calls++
		var p struct {
			DisplayTime float64 `json:"displaytime"`
		}
		require.NoError(t, json.Unmarshal(call.Params, &p))
		displayTime = p.DisplayTime
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": call.ID, "result": "OK"})
	}))
	t.Cleanup(srv.Close)
	c := clientForURL(t, srv.URL, true)

	n := NewNotification("Sonarr", "Test Passed")
	require.NoError(t, c.Notify(context.Background(), n, false))
	assert.Equal(t, 0, calls, "suppressed host must drop unforced notifications")

	require.NoError(t, c.Notify(context.Background(), n, true))
	assert.Equal(t, 1, calls, "forced notifications must bypass suppression")
	assert.Equal(t, float64(5000), displayTime)
}
