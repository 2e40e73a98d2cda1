package encounter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
	"appeal/pkg/platform/tx"
)

// Postgres persists encounters and their screening results across two
// tables; screenings are written in the same statement batch as the
// encounter row.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) queryer(ctx context.Context) queryer {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, e *Encounter) error {
	const insertEncounter = `
		INSERT INTO encounters (id, child_id, type, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	const insertScreening = `
		INSERT INTO screening_results (encounter_id, category, question_id, response, flagged)
		VALUES ($1, $2, $3, $4, $5)`

	q := s.queryer(ctx)
	_, err := q.ExecContext(ctx, insertEncounter,
		e.ID.String(), e.ChildID.String(), string(e.Type), e.Date, e.Notes, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert encounter: %w", err)
	}
	for _, sr := range e.Screenings {
		if _, err := q.ExecContext(ctx, insertScreening,
			e.ID.String(), sr.Category, sr.QuestionID, sr.Response, sr.Flagged); err != nil {
			return fmt.Errorf("insert screening result: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.EncounterID) (*Encounter, error) {
	const q = `
		SELECT id, child_id, type, date, notes, created_at
		FROM encounters WHERE id = $1`

	row := s.queryer(ctx).QueryRowContext(ctx, q, id.String())
	e, err := scanEncounter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select encounter: %w", err)
	}
	if err := s.loadScreenings(ctx, map[domain.EncounterID]*Encounter{e.ID: e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *PostgresStore) ListByChild(ctx context.Context, childID domain.ChildID) ([]*Encounter, error) {
	const q = `
		SELECT id, child_id, type, date, notes, created_at
		FROM encounters WHERE child_id = $1 ORDER BY date, created_at`

	rows, err := s.queryer(ctx).QueryContext(ctx, q, childID.String())
	if err != nil {
		return nil, fmt.Errorf("select encounters: %w", err)
	}
	defer rows.Close()

	var out []*Encounter
	byID := make(map[domain.EncounterID]*Encounter)
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		out = append(out, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate encounters: %w", err)
	}
	if err := s.loadScreenings(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) loadScreenings(ctx context.Context, byID map[domain.EncounterID]*Encounter) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id.String())
	}

	const q = `
		SELECT encounter_id, category, question_id, response, flagged
		FROM screening_results WHERE encounter_id = ANY($1) ORDER BY id`

	rows, err := s.queryer(ctx).QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("select screening results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawID string
			sr    ScreeningResult
		)
		if err := rows.Scan(&rawID, &sr.Category, &sr.QuestionID, &sr.Response, &sr.Flagged); err != nil {
			return fmt.Errorf("scan screening result: %w", err)
		}
		encounterID, err := domain.ParseEncounterID(rawID)
		if err != nil {
			return fmt.Errorf("parse encounter id: %w", err)
		}
		if e, ok := byID[encounterID]; ok {
			e.Screenings = append(e.Screenings, sr)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEncounter(row rowScanner) (*Encounter, error) {
	var (
		e              Encounter
		rawID, rawChld string
		typ            string
	)
	err := row.Scan(&rawID, &rawChld, &typ, &e.Date, &e.Notes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if e.ID, err = domain.ParseEncounterID(rawID); err != nil {
		return nil, fmt.Errorf("parse encounter id: %w", err)
	}
	if e.ChildID, err = domain.ParseChildID(rawChld); err != nil {
		return nil, fmt.Errorf("parse child id: %w", err)
	}
	e.Type = Type(typ)
	return &e, nil
}
