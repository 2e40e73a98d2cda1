package audit

import (
	"context"
	"database/sql"
	"fmt"

	"appeal/pkg/domain"

	"github.com/google/uuid"
)

// PostgresStore persists the audit trail in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (occurred_at, action, child_id, progress_id, actor, request_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var progressID sql.NullString
	if !event.ProgressID.IsNil() {
		progressID = sql.NullString{String: event.ProgressID.String(), Valid: true}
	}
	var childID sql.NullString
	if !event.ChildID.IsNil() {
		childID = sql.NullString{String: event.ChildID.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		event.Timestamp,
		string(event.Action),
		childID,
		progressID,
		event.Actor,
		event.RequestID,
		event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByChild(ctx context.Context, childID domain.ChildID) ([]Event, error) {
	query := `
		SELECT occurred_at, action, child_id, progress_id, actor, request_id, detail
		FROM audit_events
		WHERE child_id = $1
		ORDER BY occurred_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, childID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e            Event
			action       string
			rawChild     sql.NullString
			rawProgress  sql.NullString
			actor, reqID sql.NullString
			detail       sql.NullString
		)
		if err := rows.Scan(&e.Timestamp, &action, &rawChild, &rawProgress, &actor, &reqID, &detail); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Action = Action(action)
		if rawChild.Valid {
			if id, err := uuid.Parse(rawChild.String); err == nil {
				e.ChildID = domain.ChildID(id)
			}
		}
		if rawProgress.Valid {
			if id, err := uuid.Parse(rawProgress.String); err == nil {
				e.ProgressID = domain.ProgressID(id)
			}
		}
		e.Actor = actor.String
		e.RequestID = reqID.String
		e.Detail = detail.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
