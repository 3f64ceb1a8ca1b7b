package catalog

import (
	"context"
	"encoding/json"
	"log"

	"openmelody/internal/apperr"
	"openmelody/internal/cache"
)

const cacheKeyAlbums = "albums"

func albumCacheKey(id string) string      { return "album:" + id }
func albumSongsCacheKey(id string) string { return "album-songs:" + id }
func likesCacheKey(id string) string      { return "likes:" + id }

// Service wraps the catalog store with the cache-aside read path. The cache
// is best-effort throughout: infrastructure failures are logged and treated
// as a miss, never surfaced to the caller.
//
// Known staleness window, carried over deliberately: the "albums" list key is
// only invalidated on album create, and "album-songs:{id}" is never
// invalidated on song mutations. Both expire with the cache TTL.
type Service struct {
	store Store
	cache *cache.Cache
}

func NewService(store Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

func (s *Service) AddAlbum(ctx context.Context, name string, year int) (string, error) {
	id, err := s.store.AddAlbum(ctx, name, year)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, cacheKeyAlbums)
	return id, nil
}

func (s *Service) GetAlbums(ctx context.Context) ([]Album, bool, error) {
	var albums []Album
	if s.cacheGet(ctx, cacheKeyAlbums, &albums) {
		return albums, true, nil
	}

	albums, err := s.store.GetAlbums(ctx)
	if err != nil {
		return nil, false, err
	}
	s.cacheSet(ctx, cacheKeyAlbums, albums)
	return albums, false, nil
}

func (s *Service) GetAlbumByID(ctx context.Context, id string) (*Album, bool, error) {
	var album Album
	if s.cacheGet(ctx, albumCacheKey(id), &album) {
		return &album, true, nil
	}

	fresh, err := s.store.GetAlbumByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	s.cacheSet(ctx, albumCacheKey(id), fresh)
	return fresh, false, nil
}

func (s *Service) EditAlbum(ctx context.Context, id, name string, year int) error {
	if err := s.store.UpdateAlbum(ctx, id, name, year); err != nil {
		return err
	}
	s.invalidate(ctx, albumCacheKey(id))
	return nil
}

func (s *Service) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	if err := s.store.UpdateAlbumCover(ctx, id, coverURL); err != nil {
		return err
	}
	s.invalidate(ctx, albumCacheKey(id))
	return nil
}

func (s *Service) DeleteAlbum(ctx context.Context, id string) error {
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, albumCacheKey(id))
	return nil
}

func (s *Service) GetSongsByAlbumID(ctx context.Context, albumID string) ([]SongSummary, bool, error) {
	var songs []SongSummary
	if s.cacheGet(ctx, albumSongsCacheKey(albumID), &songs) {
		return songs, true, nil
	}

	songs, err := s.store.GetSongsByAlbumID(ctx, albumID)
	if err != nil {
		return nil, false, err
	}
	s.cacheSet(ctx, albumSongsCacheKey(albumID), songs)
	return songs, false, nil
}

// GetAlbumLikes returns the like count for an album with its provenance.
func (s *Service) GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error) {
	var userIDs []string
	if s.cacheGet(ctx, likesCacheKey(albumID), &userIDs) {
		return len(userIDs), true, nil
	}

	userIDs, err := s.store.GetAlbumLikes(ctx, albumID)
	if err != nil {
		return 0, false, err
	}
	s.cacheSet(ctx, likesCacheKey(albumID), userIDs)
	return len(userIDs), false, nil
}

// ToggleLike flips the (album, user) like state: absent inserts, present
// deletes. Calling it twice restores the original state.
func (s *Service) ToggleLike(ctx context.Context, albumID, userID string) error {
	if _, _, err := s.GetAlbumByID(ctx, albumID); err != nil {
		return err
	}

	liked, err := s.store.HasLike(ctx, albumID, userID)
	if err != nil {
		return err
	}
	if liked {
		err = s.store.DeleteLike(ctx, albumID, userID)
	} else {
		err = s.store.InsertLike(ctx, albumID, userID)
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, likesCacheKey(albumID))
	return nil
}

func (s *Service) AddSong(ctx context.Context, in SongInput) (string, error) {
	if err := validateSongInput(in); err != nil {
		return "", err
	}
	return s.store.AddSong(ctx, in)
}

func (s *Service) GetSongs(ctx context.Context, title, performer string) ([]SongSummary, error) {
	return s.store.GetSongs(ctx, title, performer)
}

func (s *Service) GetSongByID(ctx context.Context, id string) (*Song, error) {
	return s.store.GetSongByID(ctx, id)
}

func (s *Service) EditSong(ctx context.Context, id string, in SongInput) error {
	if err := validateSongInput(in); err != nil {
		return err
	}
	return s.store.UpdateSong(ctx, id, in)
}

func (s *Service) DeleteSong(ctx context.Context, id string) error {
	return s.store.DeleteSong(ctx, id)
}

func validateSongInput(in SongInput) error {
	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if in.Year == 0 {
		return apperr.Validation("year is required")
	}
	if in.Genre == "" {
		return apperr.Validation("genre is required")
	}
	if in.Performer == "" {
		return apperr.Validation("performer is required")
	}
	return nil
}

// cacheGet reports whether dest was filled from cache. Infrastructure errors
// and undecodable entries count as a miss.
func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	data, present, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("catalog: cache get %s: %v", key, err)
		return false
	}
	if !present {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("catalog: cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("catalog: cache encode %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, 0); err != nil {
		log.Printf("catalog: cache set %s: %v", key, err)
	}
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("catalog: cache delete %s: %v", key, err)
	}
}
