package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const postColumns = `id, author_id, title, content, priority, created_at, updated_at, deleted_at`

// PostgresPostStore persists posts in Postgres.
type PostgresPostStore struct {
	db DB
}

func NewPostgresPostStore(db DB) *PostgresPostStore {
	return &PostgresPostStore{db: db}
}

func (s *PostgresPostStore) Create(ctx context.Context, p Post) (Post, error) {
	const q = `INSERT INTO posts (author_id, title, content, priority)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + postColumns
	return scanPost(s.db.QueryRow(ctx, q, p.AuthorID, p.Title, p.Content, int16(p.Priority)))
}

func (s *PostgresPostStore) Get(ctx context.Context, id int64) (Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanPost(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresPostStore) List(ctx context.Context, limit, offset int) ([]Post, int, error) {
	limit, offset = clampPage(limit, offset)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + postColumns + `
	           FROM posts
	           WHERE deleted_at IS NULL
	           ORDER BY created_at DESC, id DESC
	           LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (s *PostgresPostStore) Update(ctx context.Context, id, authorID int64, u PostUpdate) error {
	const q = `UPDATE posts SET title = $1, content = $2, priority = $3, updated_at = now()
	           WHERE id = $4 AND author_id = $5 AND deleted_at IS NULL`
	tag, err := s.db.Exec(ctx, q, u.Title, u.Content, int16(u.Priority), id, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *PostgresPostStore) SoftDelete(ctx context.Context, id, authorID int64) error {
	const q = `UPDATE posts SET deleted_at = now()
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

func scanPost(row pgx.Row) (Post, error) {
	var (
		p        Post
		priority int16
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &priority,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
		return Post{}, err
	}
	p.Priority = Priority(priority)
	return p, nil
}
