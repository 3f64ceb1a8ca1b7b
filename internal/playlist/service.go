package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"openmelody/internal/apperr"
	"openmelody/internal/catalog"
	"openmelody/internal/identity"
)

// SongGetter is the piece of the catalog this package needs: confirming a
// song exists before it enters a playlist.
type SongGetter interface {
	GetSongByID(ctx context.Context, id string) (*catalog.Song, error)
}

// UserGetter resolves user ids when adding collaborators.
type UserGetter interface {
	GetUserByID(ctx context.Context, id string) (*identity.User, error)
}

type Service struct {
	store Store
	songs SongGetter
	users UserGetter
	rdb   *redis.Client
}

func NewService(store Store, songs SongGetter, users UserGetter, rdb *redis.Client) *Service {
	return &Service{store: store, songs: songs, users: users, rdb: rdb}
}

// Authorize gates every playlist read and mutation. The distinction between
// "playlist missing" and "not the owner" is load-bearing: a missing playlist
// is terminal and must never escalate to the collaboration check, while a
// wrong owner still has the collaboration path open when the required level
// allows it.
func (s *Service) Authorize(ctx context.Context, playlistID, userID string, level AccessLevel) error {
	err := s.verifyOwner(ctx, playlistID, userID)
	if err == nil || level == Owner {
		return err
	}

	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindForbidden {
		ok, cerr := s.store.HasCollaboration(ctx, playlistID, userID)
		if cerr != nil {
			return cerr
		}
		if !ok {
			return apperr.Forbidden("you are not allowed to access this playlist")
		}
		return nil
	}
	return err
}

func (s *Service) verifyOwner(ctx context.Context, playlistID, userID string) error {
	pl, err := s.store.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if pl.Owner != userID {
		return apperr.Forbidden("you are not allowed to access this resource")
	}
	return nil
}

func (s *Service) CreatePlaylist(ctx context.Context, name, owner string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return "", apperr.Validation("name must be between 1 and 255 characters")
	}

	id, err := s.store.AddPlaylist(ctx, name, owner)
	if err != nil {
		return "", err
	}
	s.publishEvent(ctx, "playlist.created", map[string]any{"playlistId": id, "owner": owner})
	return id, nil
}

func (s *Service) GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	return s.store.GetPlaylists(ctx, userID)
}

// GetPlaylist returns a playlist without any authorization check; callers
// that need gating go through Authorize first.
func (s *Service) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	return s.store.GetPlaylistByID(ctx, id)
}

func (s *Service) DeletePlaylist(ctx context.Context, playlistID, actorID string) error {
	if err := s.Authorize(ctx, playlistID, actorID, Owner); err != nil {
		return err
	}
	if err := s.store.DeletePlaylist(ctx, playlistID); err != nil {
		return err
	}
	s.publishEvent(ctx, "playlist.deleted", map[string]any{"playlistId": playlistID})
	return nil
}

// AddSong puts a song on a playlist on behalf of an owner or collaborator and
// records the change in the activity log.
func (s *Service) AddSong(ctx context.Context, playlistID, songID, actorID string) error {
	if err := s.Authorize(ctx, playlistID, actorID, OwnerOrCollaborator); err != nil {
		return err
	}
	if _, err := s.songs.GetSongByID(ctx, songID); err != nil {
		return err
	}
	if err := s.store.AddSongWithActivity(ctx, playlistID, songID, actorID); err != nil {
		return err
	}
	s.publishEvent(ctx, "playlist.song.added", map[string]any{
		"playlistId": playlistID,
		"songId":     songID,
		"userId":     actorID,
	})
	return nil
}

func (s *Service) RemoveSong(ctx context.Context, playlistID, songID, actorID string) error {
	if err := s.Authorize(ctx, playlistID, actorID, OwnerOrCollaborator); err != nil {
		return err
	}
	if err := s.store.RemoveSongWithActivity(ctx, playlistID, songID, actorID); err != nil {
		return err
	}
	s.publishEvent(ctx, "playlist.song.removed", map[string]any{
		"playlistId": playlistID,
		"songId":     songID,
		"userId":     actorID,
	})
	return nil
}

func (s *Service) GetPlaylistSongs(ctx context.Context, playlistID, actorID string) (*Playlist, []catalog.SongSummary, error) {
	if err := s.Authorize(ctx, playlistID, actorID, OwnerOrCollaborator); err != nil {
		return nil, nil, err
	}
	pl, err := s.store.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, nil, err
	}
	songs, err := s.store.GetPlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, nil, err
	}
	return pl, songs, nil
}

func (s *Service) GetActivities(ctx context.Context, playlistID, actorID string) ([]Activity, error) {
	if err := s.Authorize(ctx, playlistID, actorID, OwnerOrCollaborator); err != nil {
		return nil, err
	}
	return s.store.GetPlaylistActivities(ctx, playlistID)
}

// AddCollaborator grants a user access to a playlist. Only the owner can
// share, and the user being added must exist.
func (s *Service) AddCollaborator(ctx context.Context, playlistID, userID, actorID string) (string, error) {
	if err := s.Authorize(ctx, playlistID, actorID, Owner); err != nil {
		return "", err
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return "", err
	}
	return s.store.AddCollaboration(ctx, playlistID, userID)
}

func (s *Service) RemoveCollaborator(ctx context.Context, playlistID, userID, actorID string) error {
	if err := s.Authorize(ctx, playlistID, actorID, Owner); err != nil {
		return err
	}
	return s.store.DeleteCollaboration(ctx, playlistID, userID)
}

// publishEvent notifies listeners on the broadcast channel, best-effort.
func (s *Service) publishEvent(ctx context.Context, eventType string, payload any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(map[string]any{"type": eventType, "payload": payload})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, "broadcast", string(data)).Err(); err != nil {
		log.Printf("playlist: publish event: %v", err)
	}
}
