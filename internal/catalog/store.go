package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"openmelody/internal/apperr"
)

type Store interface {
	AddAlbum(ctx context.Context, name string, year int) (string, error)
	GetAlbums(ctx context.Context) ([]Album, error)
	GetAlbumByID(ctx context.Context, id string) (*Album, error)
	UpdateAlbum(ctx context.Context, id, name string, year int) error
	UpdateAlbumCover(ctx context.Context, id, coverURL string) error
	DeleteAlbum(ctx context.Context, id string) error

	AddSong(ctx context.Context, in SongInput) (string, error)
	GetSongs(ctx context.Context, title, performer string) ([]SongSummary, error)
	GetSongByID(ctx context.Context, id string) (*Song, error)
	UpdateSong(ctx context.Context, id string, in SongInput) error
	DeleteSong(ctx context.Context, id string) error
	GetSongsByAlbumID(ctx context.Context, albumID string) ([]SongSummary, error)

	GetAlbumLikes(ctx context.Context, albumID string) ([]string, error)
	HasLike(ctx context.Context, albumID, userID string) (bool, error)
	InsertLike(ctx context.Context, albumID, userID string) error
	DeleteLike(ctx context.Context, albumID, userID string) error
}

// DBOps is the subset of pgxpool.Pool methods the store uses, so tests can
// inject pgxmock.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
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

func (s *PostgresStore) AddAlbum(ctx context.Context, name string, year int) (string, error) {
	id := "album-" + uuid.NewString()
	var out string
	err := s.db.QueryRow(ctx, `
		INSERT INTO albums (id, name, year) VALUES ($1, $2, $3) RETURNING id
	`, id, name, year).Scan(&out)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *PostgresStore) GetAlbums(ctx context.Context) ([]Album, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, year, coverurl FROM albums`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	albums := []Album{}
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.Name, &a.Year, &a.CoverURL); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func (s *PostgresStore) GetAlbumByID(ctx context.Context, id string) (*Album, error) {
	var a Album
	err := s.db.QueryRow(ctx, `
		SELECT id, name, year, coverurl FROM albums WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Year, &a.CoverURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("album not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE albums SET name = $1, year = $2 WHERE id = $3
	`, name, year, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("album not found")
	}
	return nil
}

func (s *PostgresStore) UpdateAlbumCover(ctx context.Context, id, coverURL string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE albums SET coverurl = $1 WHERE id = $2
	`, coverURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("album not found")
	}
	return nil
}

func (s *PostgresStore) DeleteAlbum(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("album not found")
	}
	return nil
}

func (s *PostgresStore) AddSong(ctx context.Context, in SongInput) (string, error) {
	id := "song-" + uuid.NewString()
	var out string
	err := s.db.QueryRow(ctx, `
		INSERT INTO songs (id, title, year, genre, performer, duration, albumid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, id, in.Title, in.Year, in.Genre, in.Performer, in.Duration, in.AlbumID).Scan(&out)
	if err != nil {
		return "", err
	}
	return out, nil
}

// GetSongs filters by case-insensitive substring match on title and
// performer; empty filters match everything.
func (s *PostgresStore) GetSongs(ctx context.Context, title, performer string) ([]SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer FROM songs
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR performer ILIKE '%' || $2 || '%')
	`, title, performer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

func (s *PostgresStore) GetSongByID(ctx context.Context, id string) (*Song, error) {
	var song Song
	err := s.db.QueryRow(ctx, `
		SELECT id, title, year, genre, performer, duration, albumid
		FROM songs WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer, &song.Duration, &song.AlbumID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("song not found")
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *PostgresStore) UpdateSong(ctx context.Context, id string, in SongInput) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE songs SET title = $1, year = $2, genre = $3, performer = $4, duration = $5, albumid = $6
		WHERE id = $7
	`, in.Title, in.Year, in.Genre, in.Performer, in.Duration, in.AlbumID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("song not found")
	}
	return nil
}

func (s *PostgresStore) DeleteSong(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("song not found")
	}
	return nil
}

func (s *PostgresStore) GetSongsByAlbumID(ctx context.Context, albumID string) ([]SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer FROM songs WHERE albumid = $1
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

func (s *PostgresStore) GetAlbumLikes(ctx context.Context, albumID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT userid FROM user_album_likes WHERE albumid = $1
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, uid)
	}
	return userIDs, rows.Err()
}

func (s *PostgresStore) HasLike(ctx context.Context, albumID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_album_likes WHERE albumid = $1 AND userid = $2)
	`, albumID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) InsertLike(ctx context.Context, albumID, userID string) error {
	id := "likes-" + uuid.NewString()
	tag, err := s.db.Exec(ctx, `
		INSERT INTO user_album_likes (id, userid, albumid) VALUES ($1, $2, $3)
		ON CONFLICT (userid, albumid) DO NOTHING
	`, id, userID, albumID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Invariant("like was not added")
	}
	return nil
}

func (s *PostgresStore) DeleteLike(ctx context.Context, albumID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM user_album_likes WHERE albumid = $1 AND userid = $2
	`, albumID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Invariant("like was not removed")
	}
	return nil
}

func scanSongSummaries(rows pgx.Rows) ([]SongSummary, error) {
	songs := []SongSummary{}
	for rows.Next() {
		var s SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}
