package pool_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kodisync/internal/kodi"
	"kodisync/internal/playback"
	"kodisync/internal/pool"
)

func openTestStore(t *testing.T) *playback.Store {
	t.Helper()
	store, err := playback.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStopAndStartPlayback(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	store := openTestStore(t)

	ep := kodi.Episode{
		ID: 120, ShowID: 3, Season: 1, Episode: 4,
		File: "/mnt/tv/Show/S01E04.mkv", ShowTitle: "Show", Title: "Part Four",
	}

	h := newHost(ctrl, "living-room", 1)
	gomock.InOrder(
		h.EXPECT().ActivePlayers(gomock.Any()).Return([]kodi.Player{{ID: 1, Type: "video"}}, nil),
		h.EXPECT().PlayerItem(gomock.Any(), 1).Return(&kodi.PlayerItem{ID: 120, Type: "episode"}, nil),
		h.EXPECT().PlayerState(gomock.Any(), 1).Return(kodi.PlayerState{Position: 37.25, Paused: true}, nil),
		h.EXPECT().StopPlayer(gomock.Any(), 1).Return(nil),
		// Interruption notice is forced past suppression.
		h.EXPECT().Notify(gomock.Any(), gomock.Any(), true).DoAndReturn(
			func(_ context.Context, n kodi.Notification, _ bool) error {
				assert.Equal(t, "Sonarr", n.Title)
				assert.Equal(t, "Processing Upgrade. Please Wait...", n.Message)
				return nil
			}),
	)

	p := pool.New([]pool.Client{h}, store, testLogger(), pool.WithSettleDelay(time.Millisecond))
	p.StopPlayback(ctx, ep, "Processing Upgrade. Please Wait...", true)

	pending, err := store.List()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ep.Key(), pending[0].Key)
	assert.Equal(t, 37.25, pending[0].Position)
	assert.True(t, pending[0].Paused)

	// The rescanned entry carries a new host-assigned id; restart matches on
	// identity and resumes at the saved position.
	replacement := ep
	replacement.ID = 250
	gomock.InOrder(
		h.EXPECT().PlayEpisode(gomock.Any(), 250, 37.25).Return(nil),
		h.EXPECT().ActivePlayers(gomock.Any()).Return([]kodi.Player{{ID: 1, Type: "video"}}, nil),
		h.EXPECT().PausePlayer(gomock.Any(), 1).Return(nil),
	)
	p.StartPlayback(ctx, replacement)

	// The record was consumed; a second restart finds nothing to do.
	p.StartPlayback(ctx, replacement)
	pending, err = store.List()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStopPlaybackIgnoresOtherItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := openTestStore(t)

	ep := kodi.Episode{ID: 120, ShowID: 3, Season: 1, Episode: 4}

	h := newHost(ctrl, "living-room", 1)
	gomock.InOrder(
		h.EXPECT().ActivePlayers(gomock.Any()).Return([]kodi.Player{{ID: 1, Type: "video"}}, nil),
		// Something else is playing; it must not be stopped.
		h.EXPECT().PlayerItem(gomock.Any(), 1).Return(&kodi.PlayerItem{ID: 999, Type: "episode"}, nil),
	)

	p := pool.New([]pool.Client{h}, store, testLogger(), pool.WithSettleDelay(time.Millisecond))
	p.StopPlayback(context.Background(), ep, "Deleted Episode", true)

	pending, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStartPlaybackNotPausedSkipsRepause(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := openTestStore(t)

	ep := kodi.Episode{ID: 120, ShowID: 3, Season: 1, Episode: 4}
	require.NoError(t, store.Add(&playback.Record{
		Host: "living-room", Key: ep.Key(), EpisodeID: 120, Position: 12.5,
	}))

	h := newHost(ctrl, "living-room", 1)
	h.EXPECT().PlayEpisode(gomock.Any(), 120, 12.5).Return(nil)

	p := pool.New([]pool.Client{h}, store, testLogger())
	p.StartPlayback(context.Background(), ep)
}

func TestUpdateGUIsSkipsScannedHosts(t *testing.T) {
	ctrl := gomock.NewController(t)

	scanned := newHost(ctrl, "scanned", 1)
	idle := newHost(ctrl, "idle", 2)

	scanned.EXPECT().Scanned().Return(true)
	idle.EXPECT().Scanned().Return(false)
	idle.EXPECT().UpdateGUI(gomock.Any()).Return(nil)

	p := pool.New([]pool.Client{scanned, idle}, nil, testLogger())
	p.UpdateGUIs(context.Background())
}

func TestNotifyBroadcastsToAllHosts(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := newHost(ctrl, "a", 1)
	b := newHost(ctrl, "b", 2)

	n := kodi.NewNotification("Sonarr - Downloaded New Episode", "Show - S01E04 - Part Four")
	a.EXPECT().Notify(gomock.Any(), n, false).Return(nil)
	b.EXPECT().Notify(gomock.Any(), n, false).Return(nil)

	p := pool.New([]pool.Client{a, b}, nil, testLogger())
	p.Notify(context.Background(), n)
}
