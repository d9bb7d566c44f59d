package post

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pofol/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO portfolio.post (categoryid, tabid, title, content, imageurl, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		post.CategoryID, post.TabID, post.Title, post.Content, post.ImageURL, now, now,
	).Scan(&post.ID)
	if err != nil {
		return dberr.Wrap(err, "create_post")
	}
	return nil
}

func (repository *PostgresRepository) ListByCategory(context context.Context, categoryID int64) ([]*Post, error) {
	const query = `
		SELECT id, categoryid, tabid, title, content, imageurl, createdat, updatedat
		FROM portfolio.post
		WHERE categoryid = $1
		ORDER BY createdat ASC`

	rows, err := repository.db.Query(context, query, categoryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		p := &Post{}
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.TabID, &p.Title, &p.Content, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (repository *PostgresRepository) GetByTab(context context.Context, tabID int64) (*Post, error) {
	const query = `
		SELECT id, categoryid, tabid, title, content, imageurl, createdat, updatedat
		FROM portfolio.post
		WHERE tabid = $1`

	p := &Post{}
	err := repository.db.QueryRow(context, query, tabID).Scan(
		&p.ID, &p.CategoryID, &p.TabID, &p.Title, &p.Content, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post_by_tab")
	}
	return p, nil
}

func (repository *PostgresRepository) UpdateByTab(context context.Context, tabID int64, title, content, imageURL *string) error {
	const query = `
		UPDATE portfolio.post
		SET title = $2, content = $3, imageurl = $4, updatedat = $5
		WHERE tabid = $1`

	if _, err := repository.db.Exec(context, query, tabID, title, content, imageURL, time.Now()); err != nil {
		return dberr.Wrap(err, "update_post_by_tab")
	}
	return nil
}

func (repository *PostgresRepository) CreateIntroduce(context context.Context, introduce *Introduce) error {
	const query = `
		INSERT INTO portfolio.introduce (categoryid, title, content)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		introduce.CategoryID, introduce.Title, introduce.Content,
	).Scan(&introduce.ID)
	if err != nil {
		return dberr.Wrap(err, "create_introduce")
	}
	return nil
}

func (repository *PostgresRepository) GetIntroduceByCategory(context context.Context, categoryID int64) (*Introduce, error) {
	const query = `
		SELECT id, categoryid, title, content
		FROM portfolio.introduce
		WHERE categoryid = $1`

	i := &Introduce{}
	err := repository.db.QueryRow(context, query, categoryID).Scan(
		&i.ID, &i.CategoryID, &i.Title, &i.Content,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_introduce")
	}
	return i, nil
}

func (repository *PostgresRepository) UpdateIntroduce(context context.Context, categoryID int64, title, content string) error {
	const query = `
		UPDATE portfolio.introduce
		SET title = $2, content = $3
		WHERE categoryid = $1`

	if _, err := repository.db.Exec(context, query, categoryID, title, content); err != nil {
		return dberr.Wrap(err, "update_introduce")
	}
	return nil
}
