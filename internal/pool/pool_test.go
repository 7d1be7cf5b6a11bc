package pool_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kodisync/internal/kodi"
	"kodisync/internal/pool"
	"kodisync/internal/pool/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHost builds a mock with the identity calls every pool operation makes.
func newHost(ctrl *gomock.Controller, name string, priority int) *mocks.MockClient {
	h := mocks.NewMockClient(ctrl)
	h.EXPECT().Name().Return(name).AnyTimes()
	h.EXPECT().Priority().Return(priority).AnyTimes()
	return h
}

func TestHostsSortedByPriority(t *testing.T) {
	ctrl := gomock.NewController(t)

	second := newHost(ctrl, "second", 2)
	first := newHost(ctrl, "first", 1)
	third := newHost(ctrl, "third", 3)

	p := pool.New([]pool.Client{second, third, first}, nil, testLogger())

	hosts := p.Hosts()
	require.Len(t, hosts, 3)
	assert.Equal(t, "first", hosts[0].Name())
	assert.Equal(t, "second", hosts[1].Name())
	assert.Equal(t, "third", hosts[2].Name())
}

func TestScanDirectoryFailsOverToNextHost(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	dir := "/data/tv/Show"

	existing := kodi.Episode{ID: 1, ShowID: 3, Season: 1, Episode: 1}
	found := kodi.Episode{ID: 9, ShowID: 3, Season: 1, Episode: 2}

	a := newHost(ctrl, "a", 1)
	b := newHost(ctrl, "b", 2)

	gomock.InOrder(
		a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return([]kodi.Episode{existing}, nil),
		a.EXPECT().ScanDirectory(gomock.Any(), dir).Return(errors.New("host busy")),
		b.EXPECT().ScanDirectory(gomock.Any(), dir).Return(nil),
		a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return([]kodi.Episode{existing, found}, nil),
	)

	p := pool.New([]pool.Client{a, b}, nil, testLogger())
	added, err := p.ScanDirectory(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []kodi.Episode{found}, added)
}

func TestScanDirectoryStopsAtFirstSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := "/data/tv/Show"

	a := newHost(ctrl, "a", 1)
	b := newHost(ctrl, "b", 2)

	// b must never be asked to scan; a accepting ends the pass.
	gomock.InOrder(
		a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return(nil, nil),
		a.EXPECT().ScanDirectory(gomock.Any(), dir).Return(nil),
		a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return(nil, nil),
	)

	p := pool.New([]pool.Client{a, b}, nil, testLogger())
	_, err := p.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
}

func TestScanDirectoryRetriesUntilAHostAccepts(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := "/data/tv/Show"

	a := newHost(ctrl, "a", 1)
	fail := errors.New("scan already running")

	gomock.InOrder(
		a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return(nil, nil),
		a.EXPECT().ScanDirectory(gomock.Any(), dir).Return(fail),
		a.EXPECT().ScanDirectory(gomock.Any(), dir).Return(fail),
		a.EXPECT().ScanDirectory(gomock.Any(), dir).Return(nil),
		a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return(nil, nil),
	)

	p := pool.New([]pool.Client{a}, nil, testLogger(), pool.WithRetryDelay(time.Millisecond))
	_, err := p.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
}

func TestScanDirectoryGivesUpOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := "/data/tv/Show"

	a := newHost(ctrl, "a", 1)
	a.EXPECT().EpisodesByDir(gomock.Any(), dir).Return(nil, nil)
	a.EXPECT().ScanDirectory(gomock.Any(), dir).Return(errors.New("down")).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := pool.New([]pool.Client{a}, nil, testLogger(), pool.WithRetryDelay(time.Millisecond))
	_, err := p.ScanDirectory(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCleanLibrarySkipsActivePlayer(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := newHost(ctrl, "a", 1)
	b := newHost(ctrl, "b", 2)

	a.EXPECT().IsPlaying(gomock.Any()).Return(true, nil).Times(2)
	b.EXPECT().IsPlaying(gomock.Any()).Return(false, nil).Times(2)
	b.EXPECT().CleanLibrary(gomock.Any()).Return(nil)

	p := pool.New([]pool.Client{a, b}, nil, testLogger(), pool.WithSkipActive(true))
	require.NoError(t, p.CleanLibrary(context.Background()))
}

func TestRemoveEpisodesTriesEveryHost(t *testing.T) {
	ctrl := gomock.NewController(t)

	e1 := kodi.Episode{ID: 1, ShowID: 3, Season: 1, Episode: 1}
	e2 := kodi.Episode{ID: 2, ShowID: 3, Season: 1, Episode: 2}

	a := newHost(ctrl, "a", 1)
	b := newHost(ctrl, "b", 2)

	a.EXPECT().RemoveEpisode(gomock.Any(), 1).Return(nil)
	a.EXPECT().RemoveEpisode(gomock.Any(), 2).Return(errors.New("no such episode"))
	b.EXPECT().RemoveEpisode(gomock.Any(), 2).Return(nil)

	p := pool.New([]pool.Client{a, b}, nil, testLogger())
	removed := p.RemoveEpisodes(context.Background(), []kodi.Episode{e1, e2})
	assert.Equal(t, []kodi.Episode{e1, e2}, removed)
}

func TestCopyMetadataMatchesByIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)

	watched := kodi.WatchedState{
		PlayCount:  1,
		LastPlayed: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
	}
	old := kodi.Episode{ID: 5, ShowID: 3, Season: 1, Episode: 4, Watched: watched}
	replacement := kodi.Episode{ID: 9, ShowID: 3, Season: 1, Episode: 4}
	unrelated := kodi.Episode{ID: 10, ShowID: 3, Season: 1, Episode: 5}

	a := newHost(ctrl, "a", 1)
	// Only the identity-matched pair gets state; the unrelated episode must
	// never be written to.
	a.EXPECT().SetWatchedState(gomock.Any(), old, 9).Return(nil)

	p := pool.New([]pool.Client{a}, nil, testLogger())
	applied := p.CopyMetadata(context.Background(), []kodi.Episode{old}, []kodi.Episode{replacement, unrelated})
	assert.Equal(t, []kodi.Episode{replacement}, applied)
}

func TestCopyMetadataAppliesUnwatchedState(t *testing.T) {
	ctrl := gomock.NewController(t)

	// An upgrade of a never-watched episode still writes the zero state so
	// the replacement does not inherit a stale play count from the scraper.
	old := kodi.Episode{ID: 5, ShowID: 3, Season: 1, Episode: 4}
	replacement := kodi.Episode{ID: 9, ShowID: 3, Season: 1, Episode: 4}

	a := newHost(ctrl, "a", 1)
	a.EXPECT().SetWatchedState(gomock.Any(), old, 9).Return(nil)

	p := pool.New([]pool.Client{a}, nil, testLogger())
	applied := p.CopyMetadata(context.Background(), []kodi.Episode{old}, []kodi.Episode{replacement})
	assert.Equal(t, []kodi.Episode{replacement}, applied)
}

func TestShowExistsFirstResponsiveHost(t *testing.T) {
	ctrl := gomock.NewController(t)
	path := "/data/tv/Show"
	show := kodi.Show{ID: 3, Title: "Show", Year: 2020}

	a := newHost(ctrl, "a", 1)
	b := newHost(ctrl, "b", 2)

	a.EXPECT().ShowsByDir(gomock.Any(), path).Return(nil, errors.New("down"))
	b.EXPECT().ShowsByDir(gomock.Any(), path).Return([]kodi.Show{show}, nil)

	p := pool.New([]pool.Client{a, b}, nil, testLogger())
	shows := p.ShowExists(context.Background(), path)
	assert.Equal(t, []kodi.Show{show}, shows)
}

func TestRemoveShow(t *testing.T) {
	ctrl := gomock.NewController(t)
	path := "/data/tv/Show"
	show := kodi.Show{ID: 3, Title: "Show", Year: 2020}

	a := newHost(ctrl, "a", 1)
	a.EXPECT().ShowsByDir(gomock.Any(), path).Return([]kodi.Show{show}, nil)
	a.EXPECT().RemoveShow(gomock.Any(), 3).Return(&show, nil)

	p := pool.New([]pool.Client{a}, nil, testLogger())
	removed := p.RemoveShow(context.Background(), path)
	assert.Equal(t, []kodi.Show{show}, removed)
}
