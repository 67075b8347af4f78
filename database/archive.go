package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"tweet-relay-bot/models"
)

// Republished is one archived relay of a tweet into the channel.
type Republished struct {
	TweetID      string `db:"tweet_id"`
	AuthorHandle string `db:"author_handle"`
	AuthorName   string `db:"author_name"`
	Content      string `db:"content"`
	TweetType    string `db:"tweet_type"`
	MediaKind    string `db:"media_kind"`
	PostedAt     int64  `db:"posted_at"`
}

// InitDB opens (and if necessary creates) the archive database.
func InitDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createArchiveTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive table: %w", err)
	}

	log.Println("Successfully connected to the archive database at", dbPath)
	return db, nil
}

func createArchiveTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS republished_tweets (
        db_id INTEGER PRIMARY KEY AUTOINCREMENT,
        tweet_id TEXT UNIQUE,
        author_handle TEXT,
        author_name TEXT,
        content TEXT,
        tweet_type TEXT,
        media_kind TEXT,
        posted_at INTEGER
    );`
	_, err := db.Exec(query)
	return err
}

// InsertRepublished records a relayed tweet. Re-inserting the same tweet
// ID is ignored.
func InsertRepublished(db *sql.DB, rec Republished) error {
	query := `
    INSERT OR IGNORE INTO republished_tweets (
        tweet_id, author_handle, author_name, content, tweet_type, media_kind, posted_at
    ) VALUES (?, ?, ?, ?, ?, ?, ?);`

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for archiving tweet: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(
		rec.TweetID,
		rec.AuthorHandle,
		rec.AuthorName,
		rec.Content,
		rec.TweetType,
		rec.MediaKind,
		rec.PostedAt,
	); err != nil {
		return fmt.Errorf("failed to archive tweet %s: %w", rec.TweetID, err)
	}
	return nil
}

// CountRepublished returns the number of archived relays.
func CountRepublished(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM republished_tweets").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RecentRepublished returns the most recently archived relays, newest first.
func RecentRepublished(db *sql.DB, limit int) ([]Republished, error) {
	rows, err := db.Query(`
    SELECT tweet_id, author_handle, author_name, content, tweet_type, media_kind, posted_at
    FROM republished_tweets ORDER BY posted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Republished
	for rows.Next() {
		var rec Republished
		if err := rows.Scan(&rec.TweetID, &rec.AuthorHandle, &rec.AuthorName, &rec.Content, &rec.TweetType, &rec.MediaKind, &rec.PostedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PruneOlderThan deletes archive rows posted before cutoff and returns
// how many were removed.
func PruneOlderThan(db *sql.DB, cutoff time.Time) (int64, error) {
	res, err := db.Exec("DELETE FROM republished_tweets WHERE posted_at < ?", cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Archive adapts the database to the poll loop's Archiver interface.
type Archive struct {
	DB *sql.DB
}

// Record archives one relayed tweet.
func (a *Archive) Record(t models.Tweet, m models.ResolvedMedia) error {
	return InsertRepublished(a.DB, Republished{
		TweetID:      t.ID,
		AuthorHandle: t.Author.Handle,
		AuthorName:   t.Author.Name,
		Content:      t.Text,
		TweetType:    t.Type,
		MediaKind:    m.Kind.String(),
		PostedAt:     time.Now().Unix(),
	})
}
