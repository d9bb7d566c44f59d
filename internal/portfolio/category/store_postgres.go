package category

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pofol/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO portfolio.category (publicid, userid, title, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	now := time.Now()
	category.PublicID = uuid.NewString()
	category.CreatedAt = now
	category.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		category.PublicID, category.UserID, category.Title, category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]*Category, error) {
	const query = `
		SELECT id, publicid, userid, title, createdat, updatedat
		FROM portfolio.category
		WHERE userid = $1
		ORDER BY createdat ASC`

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.PublicID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Category, error) {
	const query = `
		SELECT id, publicid, userid, title, createdat, updatedat
		FROM portfolio.category
		WHERE id = $1`

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.PublicID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}
	return c, nil
}

func (repository *PostgresRepository) UpdateTitle(context context.Context, id int64, title string) error {
	const query = `UPDATE portfolio.category SET title = $2, updatedat = $3 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, title, time.Now()); err != nil {
		return dberr.Wrap(err, "update_category_title")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	// Child rows (tabs, posts, tags, files) cascade via FK constraints.
	const query = `DELETE FROM portfolio.category WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	return nil
}
