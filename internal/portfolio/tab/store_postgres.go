package tab

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

func (repository *PostgresRepository) CreateTab(context context.Context, tab *Tab) error {
	const query = `
		INSERT INTO portfolio.tab (categoryid, name, createdat, updatedat)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	now := time.Now()
	tab.CreatedAt = now
	tab.UpdatedAt = now

	err := repository.db.QueryRow(context, query, tab.CategoryID, tab.Name, now, now).Scan(&tab.ID)
	if err != nil {
		return dberr.Wrap(err, "create_tab")
	}
	return nil
}

func (repository *PostgresRepository) ListByCategory(context context.Context, categoryID int64) ([]*Tab, error) {
	const query = `
		SELECT id, categoryid, name, createdat, updatedat
		FROM portfolio.tab
		WHERE categoryid = $1
		ORDER BY createdat ASC`

	rows, err := repository.db.Query(context, query, categoryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tabs")
	}
	defer rows.Close()

	tabs := make([]*Tab, 0)
	for rows.Next() {
		t := &Tab{}
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tab")
		}
		tabs = append(tabs, t)
	}
	return tabs, nil
}

func (repository *PostgresRepository) GetTabByID(context context.Context, id int64) (*Tab, error) {
	const query = `
		SELECT id, categoryid, name, createdat, updatedat
		FROM portfolio.tab
		WHERE id = $1`

	t := &Tab{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&t.ID, &t.CategoryID, &t.Name, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tab")
	}
	return t, nil
}

func (repository *PostgresRepository) DeleteTab(context context.Context, id int64) error {
	const query = `DELETE FROM portfolio.tab WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_tab")
	}
	return nil
}

func (repository *PostgresRepository) CreateBasicTab(context context.Context, basicTab *BasicTab) error {
	const query = `
		INSERT INTO portfolio.basic_tab (categoryid, userid, tab1, tab2, content1, content2)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		basicTab.CategoryID, basicTab.UserID,
		basicTab.Tab1, basicTab.Tab2, basicTab.Content1, basicTab.Content2,
	).Scan(&basicTab.ID)
	if err != nil {
		return dberr.Wrap(err, "create_basic_tab")
	}
	return nil
}

func (repository *PostgresRepository) GetBasicTabByCategory(context context.Context, categoryID int64) (*BasicTab, error) {
	const query = `
		SELECT id, categoryid, userid, tab1, tab2, content1, content2
		FROM portfolio.basic_tab
		WHERE categoryid = $1`

	b := &BasicTab{}
	err := repository.db.QueryRow(context, query, categoryID).Scan(
		&b.ID, &b.CategoryID, &b.UserID, &b.Tab1, &b.Tab2, &b.Content1, &b.Content2,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_basic_tab")
	}
	return b, nil
}

func (repository *PostgresRepository) UpdateBasicContents(context context.Context, categoryID int64, content1, content2 string) error {
	const query = `
		UPDATE portfolio.basic_tab
		SET content1 = $2, content2 = $3
		WHERE categoryid = $1`

	if _, err := repository.db.Exec(context, query, categoryID, content1, content2); err != nil {
		return dberr.Wrap(err, "update_basic_tab")
	}
	return nil
}
