package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"appeal/internal/i18n"
	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// PostgresStore persists the definition catalog in PostgreSQL. Localized
// title/description columns mirror the per-locale authoring model.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const definitionColumns = `id, title_en, title_hi, title_kn, description_en, description_hi, description_kn, expected_age_months, position`

func (s *PostgresStore) List(ctx context.Context) ([]Definition, error) {
	query := `
		SELECT ` + definitionColumns + `
		FROM milestone_definitions
		ORDER BY expected_age_months, position
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	return defs, nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.DefinitionID) (Definition, error) {
	query := `
		SELECT ` + definitionColumns + `
		FROM milestone_definitions
		WHERE id = $1
	`
	def, err := scanDefinition(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Definition{}, sentinel.ErrNotFound
		}
		return Definition{}, fmt.Errorf("get definition: %w", err)
	}
	return def, nil
}

func (s *PostgresStore) CreateIfAbsent(ctx context.Context, def Definition) (bool, error) {
	query := `
		INSERT INTO milestone_definitions (` + definitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (title_en) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		def.ID.String(),
		def.Title[i18n.LocaleEnglish],
		def.Title[i18n.LocaleHindi],
		def.Title[i18n.LocaleKannada],
		def.Description[i18n.LocaleEnglish],
		def.Description[i18n.LocaleHindi],
		def.Description[i18n.LocaleKannada],
		def.ExpectedAgeMonths,
		def.Position,
	)
	if err != nil {
		return false, fmt.Errorf("create definition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create definition: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row rowScanner) (Definition, error) {
	var (
		rawID                  string
		titleEN, titleHI       sql.NullString
		titleKN                sql.NullString
		descEN, descHI, descKN sql.NullString
		def                    Definition
	)
	err := row.Scan(&rawID, &titleEN, &titleHI, &titleKN, &descEN, &descHI, &descKN, &def.ExpectedAgeMonths, &def.Position)
	if err != nil {
		return Definition{}, err
	}
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return Definition{}, fmt.Errorf("parse definition id: %w", err)
	}
	def.ID = domain.DefinitionID(parsed)
	def.Title = textFromColumns(titleEN, titleHI, titleKN)
	def.Description = textFromColumns(descEN, descHI, descKN)
	return def, nil
}

func textFromColumns(en, hi, kn sql.NullString) i18n.Text {
	text := i18n.Text{}
	if en.Valid && en.String != "" {
		text[i18n.LocaleEnglish] = en.String
	}
	if hi.Valid && hi.String != "" {
		text[i18n.LocaleHindi] = hi.String
	}
	if kn.Valid && kn.String != "" {
		text[i18n.LocaleKannada] = kn.String
	}
	return text
}
