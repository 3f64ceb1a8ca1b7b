package playlist

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmelody/internal/apperr"
)

func setupMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStoreWithDB(mock), mock
}

func TestAddSongWithActivityCommitsBoth(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO playlist_songs").
		WithArgs(pgxmock.AnyArg(), "playlist-1", "song-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO playlist_song_activities").
		WithArgs(pgxmock.AnyArg(), "playlist-1", "song-1", "user-1", "add", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	err := store.AddSongWithActivity(context.Background(), "playlist-1", "song-1", "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSongWithActivityRollsBackOnActivityFailure(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO playlist_songs").
		WithArgs(pgxmock.AnyArg(), "playlist-1", "song-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO playlist_song_activities").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.AddSongWithActivity(context.Background(), "playlist-1", "song-1", "user-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveSongWithActivityMissingRow(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM playlist_songs").
		WithArgs("playlist-1", "song-9").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := store.RemoveSongWithActivity(context.Background(), "playlist-1", "song-9", "user-1")

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlaylistByIDNotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT id, name, owner FROM playlists").
		WithArgs("playlist-x").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "owner"}))

	_, err := store.GetPlaylistByID(context.Background(), "playlist-x")

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
}

func TestGetPlaylistsIncludesShared(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT DISTINCT p.id, p.name, u.username").
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "username"}).
			AddRow("playlist-1", "chill", "andi").
			AddRow("playlist-2", "workout", "budi"))

	playlists, err := store.GetPlaylists(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, playlists, 2)
	assert.Equal(t, "andi", playlists[0].Username)
}

func TestDeleteCollaborationMissing(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectExec("DELETE FROM collaborations").
		WithArgs("playlist-1", "user-9").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := store.DeleteCollaboration(context.Background(), "playlist-1", "user-9")

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindInvariant, ae.Kind)
}

func TestGetPlaylistActivitiesOrdered(t *testing.T) {
	store, mock := setupMockStore(t)

	early := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(time.Minute)

	mock.ExpectQuery("SELECT u.username, s.title, psa.action, psa.time").
		WithArgs("playlist-1").
		WillReturnRows(pgxmock.NewRows([]string{"username", "title", "action", "time"}).
			AddRow("andi", "Kangen", "add", early).
			AddRow("budi", "Kangen", "delete", late))

	activities, err := store.GetPlaylistActivities(context.Background(), "playlist-1")
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "add", activities[0].Action)
	assert.True(t, activities[0].Time.Before(activities[1].Time))
}
