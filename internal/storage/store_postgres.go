package storage

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

const fileColumns = "id, userid, categoryid, kind, title, key, size, createdat"

func (repository *PostgresRepository) Create(context context.Context, file *File) error {
	const query = `
		INSERT INTO portfolio.file (userid, categoryid, kind, title, key, size, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	file.CreatedAt = time.Now().UTC()
	err := repository.db.QueryRow(context, query,
		file.UserID, file.CategoryID, file.Kind, file.Title, file.Key, file.Size, file.CreatedAt,
	).Scan(&file.ID)
	if err != nil {
		return dberr.Wrap(err, "create_file")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*File, error) {
	const query = `SELECT ` + fileColumns + ` FROM portfolio.file WHERE id = $1`

	f := &File{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&f.ID, &f.UserID, &f.CategoryID, &f.Kind, &f.Title, &f.Key, &f.Size, &f.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_file")
	}
	return f, nil
}

func (repository *PostgresRepository) ListByCategory(context context.Context, categoryID int64) ([]*File, error) {
	const query = `
		SELECT ` + fileColumns + `
		FROM portfolio.file
		WHERE categoryid = $1 AND kind = $2
		ORDER BY id ASC`

	rows, err := repository.db.Query(context, query, categoryID, KindFile)
	if err != nil {
		return nil, dberr.Wrap(err, "list_files")
	}
	defer rows.Close()

	files := make([]*File, 0)
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.CategoryID, &f.Kind, &f.Title, &f.Key, &f.Size, &f.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_file")
		}
		files = append(files, f)
	}
	return files, nil
}

func (repository *PostgresRepository) GetSingleton(context context.Context, userID int64, kind string) (*File, error) {
	const query = `SELECT ` + fileColumns + ` FROM portfolio.file WHERE userid = $1 AND kind = $2`

	f := &File{}
	err := repository.db.QueryRow(context, query, userID, kind).Scan(
		&f.ID, &f.UserID, &f.CategoryID, &f.Kind, &f.Title, &f.Key, &f.Size, &f.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_singleton_file")
	}
	return f, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM portfolio.file WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_file")
	}
	return nil
}
