package playlist

import "time"

type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// PlaylistSummary is the list row shape: playlist joined with its owner's
// username.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Activity is one append-only playlist membership change, joined with the
// actor's username and the song title for display.
type Activity struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}

const (
	actionAdd    = "add"
	actionDelete = "delete"
)

// AccessLevel selects which authorization check Authorize runs.
type AccessLevel int

const (
	// Owner grants only the playlist owner.
	Owner AccessLevel = iota
	// OwnerOrCollaborator grants the owner or any user with a collaboration
	// row on the playlist.
	OwnerOrCollaborator
)
