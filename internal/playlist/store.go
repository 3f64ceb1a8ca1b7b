package playlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"openmelody/internal/apperr"
	"openmelody/internal/catalog"
)

type Store interface {
	AddPlaylist(ctx context.Context, name, owner string) (string, error)
	GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error)
	GetPlaylistByID(ctx context.Context, id string) (*Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error

	HasCollaboration(ctx context.Context, playlistID, userID string) (bool, error)
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error

	AddSongWithActivity(ctx context.Context, playlistID, songID, userID string) error
	RemoveSongWithActivity(ctx context.Context, playlistID, songID, userID string) error
	GetPlaylistSongs(ctx context.Context, playlistID string) ([]catalog.SongSummary, error)
	GetPlaylistActivities(ctx context.Context, playlistID string) ([]Activity, error)
}

// DBOps is the subset of pgxpool.Pool methods the store uses, so tests can
// inject pgxmock. Begin is needed because a song mutation and its activity
// append commit in one transaction.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresStore struct {
	db DBOps
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func NewPostgresStoreWithDB(db DBOps) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AddPlaylist(ctx context.Context, name, owner string) (string, error) {
	id := "playlist-" + uuid.NewString()
	var out string
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlists (id, name, owner) VALUES ($1, $2, $3) RETURNING id
	`, id, name, owner).Scan(&out)
	if err != nil {
		return "", err
	}
	return out, nil
}

// GetPlaylists returns playlists the user owns plus those shared with them
// through a collaboration row.
func (s *PostgresStore) GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT p.id, p.name, u.username
		FROM playlists p
		LEFT JOIN collaborations c ON p.id = c.playlistid
		LEFT JOIN users u ON p.owner = u.id
		WHERE p.owner = $1 OR c.userid = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []PlaylistSummary{}
	for rows.Next() {
		var pl PlaylistSummary
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Username); err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	return playlists, rows.Err()
}

func (s *PostgresStore) GetPlaylistByID(ctx context.Context, id string) (*Playlist, error) {
	var pl Playlist
	err := s.db.QueryRow(ctx, `
		SELECT id, name, owner FROM playlists WHERE id = $1
	`, id).Scan(&pl.ID, &pl.Name, &pl.Owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("playlist not found")
	}
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

func (s *PostgresStore) DeletePlaylist(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("playlist not found")
	}
	return nil
}

func (s *PostgresStore) HasCollaboration(ctx context.Context, playlistID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM collaborations WHERE playlistid = $1 AND userid = $2)
	`, playlistID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	id := "collab-" + uuid.NewString()
	var out string
	err := s.db.QueryRow(ctx, `
		INSERT INTO collaborations (id, playlistid, userid) VALUES ($1, $2, $3) RETURNING id
	`, id, playlistID, userID).Scan(&out)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *PostgresStore) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM collaborations WHERE playlistid = $1 AND userid = $2
	`, playlistID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Invariant("collaboration not found")
	}
	return nil
}

// AddSongWithActivity inserts the playlist membership row and its activity
// record in one transaction, so the log can never record an add that was not
// committed.
func (s *PostgresStore) AddSongWithActivity(ctx context.Context, playlistID, songID, userID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	id := "p-s-" + uuid.NewString()
	tag, err := tx.Exec(ctx, `
		INSERT INTO playlist_songs (id, playlistid, songid) VALUES ($1, $2, $3)
	`, id, playlistID, songID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Invariant("song was not added to playlist")
	}

	if err := appendActivity(ctx, tx, playlistID, songID, userID, actionAdd); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) RemoveSongWithActivity(ctx context.Context, playlistID, songID, userID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM playlist_songs WHERE playlistid = $1 AND songid = $2
	`, playlistID, songID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("song not found in playlist")
	}

	if err := appendActivity(ctx, tx, playlistID, songID, userID, actionDelete); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func appendActivity(ctx context.Context, tx pgx.Tx, playlistID, songID, userID, action string) error {
	id := "p-s-a-" + uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO playlist_song_activities (id, playlistid, songid, userid, action, time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, playlistID, songID, userID, action, time.Now())
	return err
}

func (s *PostgresStore) GetPlaylistSongs(ctx context.Context, playlistID string) ([]catalog.SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.title, s.performer
		FROM playlist_songs ps
		LEFT JOIN songs s ON ps.songid = s.id
		WHERE ps.playlistid = $1
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []catalog.SongSummary{}
	for rows.Next() {
		var song catalog.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (s *PostgresStore) GetPlaylistActivities(ctx context.Context, playlistID string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.username, s.title, psa.action, psa.time
		FROM playlist_song_activities psa
		INNER JOIN users u ON psa.userid = u.id
		INNER JOIN songs s ON psa.songid = s.id
		WHERE psa.playlistid = $1
		ORDER BY psa.time ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Username, &a.Title, &a.Action, &a.Time); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
