package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AutoMigrate creates the schema on startup. Cascade rules carry the
// referential invariants: collaboration, playlist-song and activity rows
// never outlive their playlist, song or user.
func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users(
			id varchar(50) PRIMARY KEY,
			username varchar(255) UNIQUE NOT NULL,
			password varchar(255) NOT NULL,
			fullname varchar(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS albums(
			id varchar(50) PRIMARY KEY,
			name varchar(255) NOT NULL,
			year integer NOT NULL,
			coverurl text
		)`,
		`CREATE TABLE IF NOT EXISTS songs(
			id varchar(50) PRIMARY KEY,
			title varchar(255) NOT NULL,
			year integer NOT NULL,
			genre varchar(255) NOT NULL,
			performer varchar(255) NOT NULL,
			duration integer,
			albumid varchar(50) REFERENCES albums(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS playlists(
			id varchar(50) PRIMARY KEY,
			name varchar(255) NOT NULL,
			owner varchar(50) NOT NULL REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_songs(
			id varchar(50) PRIMARY KEY,
			playlistid varchar(50) REFERENCES playlists(id) ON DELETE CASCADE,
			songid varchar(50) REFERENCES songs(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS collaborations(
			id varchar(50) PRIMARY KEY,
			playlistid varchar(50) REFERENCES playlists(id) ON DELETE CASCADE,
			userid varchar(50) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_song_activities(
			id varchar(50) PRIMARY KEY,
			playlistid varchar(50) REFERENCES playlists(id) ON DELETE CASCADE,
			songid varchar(50) REFERENCES songs(id) ON DELETE CASCADE,
			userid varchar(50) REFERENCES users(id) ON DELETE CASCADE,
			action varchar(10) NOT NULL,
			time timestamptz NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_album_likes(
			id varchar(50) PRIMARY KEY,
			userid varchar(50) REFERENCES users(id) ON DELETE CASCADE,
			albumid varchar(50) REFERENCES albums(id) ON DELETE CASCADE,
			UNIQUE(userid, albumid)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Printf("openmelody: migrate: %v", err)
			return err
		}
	}
	return nil
}
