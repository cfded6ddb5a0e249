package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/example/board-platform/services/board/internal/thread"
)

const commentColumns = `id, post_id, author_id, parent_id, content, status, created_at, updated_at, deleted_at`

// PostgresCommentStore persists comments in Postgres.
type PostgresCommentStore struct {
	db DB
}

// NewPostgresCommentStore creates a store backed by Postgres.
func NewPostgresCommentStore(db DB) *PostgresCommentStore {
	return &PostgresCommentStore{db: db}
}

func (s *PostgresCommentStore) Create(ctx context.Context, c Comment) (Comment, error) {
	const q = `INSERT INTO comments (post_id, author_id, parent_id, content)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + commentColumns
	return scanComment(s.db.QueryRow(ctx, q, c.PostID, c.AuthorID, c.ParentID, c.Content))
}

func (s *PostgresCommentStore) Get(ctx context.Context, id int64) (Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	c, err := scanComment(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

func (s *PostgresCommentStore) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	const q = `SELECT ` + commentColumns + `
	           FROM comments
	           WHERE post_id = $1
	           ORDER BY id ASC`
	rows, err := s.db.Query(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCommentStore) UpdateContent(ctx context.Context, id, authorID int64, content string) error {
	const q = `UPDATE comments SET content = $1, updated_at = now()
	           WHERE id = $2 AND author_id = $3 AND deleted_at IS NULL`
	tag, err := s.db.Exec(ctx, q, content, id, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *PostgresCommentStore) SoftDelete(ctx context.Context, id, authorID int64) error {
	const q = `UPDATE comments SET status = 'deleted', deleted_at = now()
	           WHERE id = $1 AND author_id = $2 AND deleted_at IS NULL`
	tag, err := s.db.Exec(ctx, q, id, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *PostgresCommentStore) ModerateDelete(ctx context.Context, id int64) error {
	const q = `UPDATE comments SET status = 'deleted', deleted_at = COALESCE(deleted_at, now())
	           WHERE id = $1`
	tag, err := s.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (Comment, error) {
	var (
		c      Comment
		status string
	)
	if err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.ParentID,
		&c.Content, &status, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return Comment{}, err
	}
	// unknown markers are read as active rather than failing the listing
	c.Status, _ = thread.ParseStatus(status)
	return c, nil
}
