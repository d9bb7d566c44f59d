package tag

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pofol/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	const query = `
		INSERT INTO portfolio.tag (categoryid, name)
		VALUES ($1, $2)
		RETURNING id`

	if err := repository.db.QueryRow(context, query, tag.CategoryID, tag.Name).Scan(&tag.ID); err != nil {
		return dberr.Wrap(err, "create_tag")
	}
	return nil
}

func (repository *PostgresRepository) ListByCategory(context context.Context, categoryID int64) ([]*Tag, error) {
	const query = `
		SELECT id, categoryid, name
		FROM portfolio.tag
		WHERE categoryid = $1
		ORDER BY id ASC`

	rows, err := repository.db.Query(context, query, categoryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Tag, error) {
	const query = `SELECT id, categoryid, name FROM portfolio.tag WHERE id = $1`

	t := &Tag{}
	if err := repository.db.QueryRow(context, query, id).Scan(&t.ID, &t.CategoryID, &t.Name); err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}
	return t, nil
}

func (repository *PostgresRepository) UpdateName(context context.Context, id int64, name string) error {
	const query = `UPDATE portfolio.tag SET name = $2 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, name); err != nil {
		return dberr.Wrap(err, "update_tag")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM portfolio.tag WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	return nil
}
