package profile

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

// ─── Main ────────────────────────────────────────────────────────────────────

func (repository *PostgresRepository) CreateMain(context context.Context, main *Main) error {
	const query = `
		INSERT INTO portfolio.main (userid, greeting, smallgreeting, introduce, name, job, workyears)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		main.UserID, main.Greeting, main.SmallGreeting, main.Introduce,
		main.Name, main.Job, main.WorkYears,
	).Scan(&main.ID)
	if err != nil {
		return dberr.Wrap(err, "create_main")
	}
	return nil
}

func (repository *PostgresRepository) GetMainByUser(context context.Context, userID int64) (*Main, error) {
	const query = `
		SELECT id, userid, greeting, smallgreeting, introduce, name, job, workyears
		FROM portfolio.main
		WHERE userid = $1`

	m := &Main{}
	err := repository.db.QueryRow(context, query, userID).Scan(
		&m.ID, &m.UserID, &m.Greeting, &m.SmallGreeting, &m.Introduce,
		&m.Name, &m.Job, &m.WorkYears,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_main")
	}
	return m, nil
}

func (repository *PostgresRepository) UpdateMain(context context.Context, main *Main) error {
	const query = `
		UPDATE portfolio.main
		SET greeting = $2, smallgreeting = $3, introduce = $4, name = $5, job = $6, workyears = $7
		WHERE id = $1`

	_, err := repository.db.Exec(context, query,
		main.ID, main.Greeting, main.SmallGreeting, main.Introduce,
		main.Name, main.Job, main.WorkYears,
	)
	if err != nil {
		return dberr.Wrap(err, "update_main")
	}
	return nil
}

// ─── Skill category ──────────────────────────────────────────────────────────

func (repository *PostgresRepository) CreateSkillCategory(context context.Context, category *SkillCategory) error {
	const query = `
		INSERT INTO portfolio.skill_category (userid, name)
		VALUES ($1, $2)
		RETURNING id`

	if err := repository.db.QueryRow(context, query, category.UserID, category.Name).Scan(&category.ID); err != nil {
		return dberr.Wrap(err, "create_skill_category")
	}
	return nil
}

func (repository *PostgresRepository) GetSkillCategoryByUser(context context.Context, userID int64) (*SkillCategory, error) {
	const query = `SELECT id, userid, name FROM portfolio.skill_category WHERE userid = $1`

	c := &SkillCategory{}
	if err := repository.db.QueryRow(context, query, userID).Scan(&c.ID, &c.UserID, &c.Name); err != nil {
		return nil, dberr.Wrap(err, "get_skill_category")
	}
	return c, nil
}

func (repository *PostgresRepository) RenameSkillCategory(context context.Context, id int64, name string) error {
	const query = `UPDATE portfolio.skill_category SET name = $2 WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id, name); err != nil {
		return dberr.Wrap(err, "rename_skill_category")
	}
	return nil
}

// ─── Cards ───────────────────────────────────────────────────────────────────

func (repository *PostgresRepository) CreateCard(context context.Context, card *Card) error {
	const query = `
		INSERT INTO portfolio.card (skillcategoryid, kind, sectionname, title, subtitle, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		card.SkillCategoryID, card.Kind, card.SectionName,
		card.Title, card.SubTitle, card.Content,
	).Scan(&card.ID)
	if err != nil {
		return dberr.Wrap(err, "create_card")
	}
	return nil
}

func (repository *PostgresRepository) GetCard(context context.Context, skillCategoryID int64, kind, sectionName string) (*Card, error) {
	const query = `
		SELECT id, skillcategoryid, kind, sectionname, title, subtitle, content
		FROM portfolio.card
		WHERE skillcategoryid = $1 AND kind = $2 AND sectionname = $3`

	c := &Card{}
	err := repository.db.QueryRow(context, query, skillCategoryID, kind, sectionName).Scan(
		&c.ID, &c.SkillCategoryID, &c.Kind, &c.SectionName, &c.Title, &c.SubTitle, &c.Content,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_card")
	}
	return c, nil
}

func (repository *PostgresRepository) ListCards(context context.Context, skillCategoryID int64, kind string) ([]*Card, error) {
	const query = `
		SELECT id, skillcategoryid, kind, sectionname, title, subtitle, content
		FROM portfolio.card
		WHERE skillcategoryid = $1 AND kind = $2
		ORDER BY id ASC`

	rows, err := repository.db.Query(context, query, skillCategoryID, kind)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cards")
	}
	defer rows.Close()

	cards := make([]*Card, 0)
	for rows.Next() {
		c := &Card{}
		if err := rows.Scan(&c.ID, &c.SkillCategoryID, &c.Kind, &c.SectionName, &c.Title, &c.SubTitle, &c.Content); err != nil {
			return nil, dberr.Wrap(err, "scan_card")
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (repository *PostgresRepository) UpdateCard(context context.Context, card *Card) error {
	const query = `
		UPDATE portfolio.card
		SET sectionname = $2, title = $3, subtitle = $4, content = $5
		WHERE id = $1`

	_, err := repository.db.Exec(context, query,
		card.ID, card.SectionName, card.Title, card.SubTitle, card.Content,
	)
	if err != nil {
		return dberr.Wrap(err, "update_card")
	}
	return nil
}

func (repository *PostgresRepository) DeleteCard(context context.Context, id int64) error {
	const query = `DELETE FROM portfolio.card WHERE id = $1`
	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "delete_card")
	}
	return nil
}

// ─── Location ────────────────────────────────────────────────────────────────

func (repository *PostgresRepository) UpsertLocation(context context.Context, location *Location) error {
	const query = `
		INSERT INTO portfolio.user_location (userid, lat, lng, address, email, phonenumber)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (userid) DO UPDATE
		SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, address = EXCLUDED.address,
		    email = EXCLUDED.email, phonenumber = EXCLUDED.phonenumber`

	_, err := repository.db.Exec(context, query,
		location.UserID, location.Lat, location.Lng,
		location.Address, location.Email, location.PhoneNumber,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert_location")
	}
	return nil
}

func (repository *PostgresRepository) GetLocationByUser(context context.Context, userID int64) (*Location, error) {
	const query = `
		SELECT userid, lat, lng, address, email, phonenumber
		FROM portfolio.user_location
		WHERE userid = $1`

	l := &Location{}
	err := repository.db.QueryRow(context, query, userID).Scan(
		&l.UserID, &l.Lat, &l.Lng, &l.Address, &l.Email, &l.PhoneNumber,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_location")
	}
	return l, nil
}
