package milestone

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
	"appeal/pkg/platform/tx"

	"github.com/google/uuid"
)

// PostgresStore persists progress rows in PostgreSQL. Transition atomicity
// comes from the status guard in the UPDATE's WHERE clause: a concurrent
// writer that got there first leaves zero rows affected and the loser sees
// sentinel.ErrConflict.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// queryer lets store methods run inside an ambient transaction when one is
// carried in the context.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) conn(ctx context.Context) queryer {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const progressColumns = `id, child_id, definition_id, status, evidence_ref, completion_date, created_at, updated_at`

func (s *PostgresStore) Get(ctx context.Context, id domain.ProgressID) (*Progress, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM child_milestones
		WHERE id = $1
	`
	row, err := scanProgress(s.conn(ctx).QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return row, nil
}

func (s *PostgresStore) ListByChild(ctx context.Context, childID domain.ChildID) ([]*Progress, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM child_milestones
		WHERE child_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, childID.String())
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []*Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateIfAbsent(ctx context.Context, p *Progress) (bool, error) {
	query := `
		INSERT INTO child_milestones (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (child_id, definition_id) DO NOTHING
	`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		p.ID.String(),
		p.ChildID.String(),
		p.DefinitionID.String(),
		string(p.Status),
		nullString(p.EvidenceRef),
		nullTime(p.CompletionDate),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("create progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create progress: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *Progress, expected Status) error {
	query := `
		UPDATE child_milestones
		SET status = $1, evidence_ref = $2, completion_date = $3, updated_at = $4
		WHERE id = $5 AND status = $6
	`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		string(p.Status),
		nullString(p.EvidenceRef),
		nullTime(p.CompletionDate),
		p.UpdatedAt,
		p.ID.String(),
		string(expected),
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Distinguish a missing row from a lost race.
	if _, err := s.Get(ctx, p.ID); errors.Is(err, sentinel.ErrNotFound) {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

func scanProgress(row interface{ Scan(dest ...any) error }) (*Progress, error) {
	var (
		rawID, rawChild, rawDef string
		status                  string
		evidence                sql.NullString
		completion              sql.NullTime
		p                       Progress
	)
	err := row.Scan(&rawID, &rawChild, &rawDef, &status, &evidence, &completion, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse progress id: %w", err)
	}
	childID, err := uuid.Parse(rawChild)
	if err != nil {
		return nil, fmt.Errorf("parse child id: %w", err)
	}
	defID, err := uuid.Parse(rawDef)
	if err != nil {
		return nil, fmt.Errorf("parse definition id: %w", err)
	}
	p.ID = domain.ProgressID(id)
	p.ChildID = domain.ChildID(childID)
	p.DefinitionID = domain.DefinitionID(defID)
	p.Status = Status(status)
	if evidence.Valid {
		p.EvidenceRef = evidence.String
	}
	if completion.Valid {
		d := completion.Time
		p.CompletionDate = &d
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
