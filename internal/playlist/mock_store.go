package playlist

import (
	"context"

	"github.com/stretchr/testify/mock"

	"openmelody/internal/catalog"
	"openmelody/internal/identity"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddPlaylist(ctx context.Context, name, owner string) (string, error) {
	args := m.Called(ctx, name, owner)
	return args.String(0), args.Error(1)
}

func (m *MockStore) GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlaylistSummary), args.Error(1)
}

func (m *MockStore) GetPlaylistByID(ctx context.Context, id string) (*Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) HasCollaboration(ctx context.Context, playlistID, userID string) (bool, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockStore) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *MockStore) AddSongWithActivity(ctx context.Context, playlistID, songID, userID string) error {
	args := m.Called(ctx, playlistID, songID, userID)
	return args.Error(0)
}

func (m *MockStore) RemoveSongWithActivity(ctx context.Context, playlistID, songID, userID string) error {
	args := m.Called(ctx, playlistID, songID, userID)
	return args.Error(0)
}

func (m *MockStore) GetPlaylistSongs(ctx context.Context, playlistID string) ([]catalog.SongSummary, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.SongSummary), args.Error(1)
}

func (m *MockStore) GetPlaylistActivities(ctx context.Context, playlistID string) ([]Activity, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Activity), args.Error(1)
}

type MockSongGetter struct {
	mock.Mock
}

func (m *MockSongGetter) GetSongByID(ctx context.Context, id string) (*catalog.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Song), args.Error(1)
}

type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) GetUserByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}
