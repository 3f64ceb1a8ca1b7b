package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddAlbum(ctx context.Context, name string, year int) (string, error) {
	args := m.Called(ctx, name, year)
	return args.String(0), args.Error(1)
}

func (m *MockStore) GetAlbums(ctx context.Context) ([]Album, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Album), args.Error(1)
}

func (m *MockStore) GetAlbumByID(ctx context.Context, id string) (*Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Album), args.Error(1)
}

func (m *MockStore) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	args := m.Called(ctx, id, name, year)
	return args.Error(0)
}

func (m *MockStore) UpdateAlbumCover(ctx context.Context, id, coverURL string) error {
	args := m.Called(ctx, id, coverURL)
	return args.Error(0)
}

func (m *MockStore) DeleteAlbum(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) AddSong(ctx context.Context, in SongInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockStore) GetSongs(ctx context.Context, title, performer string) ([]SongSummary, error) {
	args := m.Called(ctx, title, performer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SongSummary), args.Error(1)
}

func (m *MockStore) GetSongByID(ctx context.Context, id string) (*Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Song), args.Error(1)
}

func (m *MockStore) UpdateSong(ctx context.Context, id string, in SongInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockStore) DeleteSong(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) GetSongsByAlbumID(ctx context.Context, albumID string) ([]SongSummary, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SongSummary), args.Error(1)
}

func (m *MockStore) GetAlbumLikes(ctx context.Context, albumID string) ([]string, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) HasLike(ctx context.Context, albumID, userID string) (bool, error) {
	args := m.Called(ctx, albumID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) InsertLike(ctx context.Context, albumID, userID string) error {
	args := m.Called(ctx, albumID, userID)
	return args.Error(0)
}

func (m *MockStore) DeleteLike(ctx context.Context, albumID, userID string) error {
	args := m.Called(ctx, albumID, userID)
	return args.Error(0)
}
