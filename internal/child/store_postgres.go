package child

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

// Postgres persists caregivers and children.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) queryer(ctx context.Context) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
} {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) CreateCaregiver(ctx context.Context, caregiver *Caregiver) error {
	const q = `
		INSERT INTO caregivers (id, first_name, last_name, phone_number, relationship, language_preference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.queryer(ctx).ExecContext(ctx, q,
		caregiver.ID.String(),
		caregiver.FirstName,
		caregiver.LastName,
		caregiver.PhoneNumber,
		string(caregiver.Relationship),
		caregiver.LanguagePreference,
		caregiver.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrDuplicate
		}
		return fmt.Errorf("insert caregiver: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCaregiver(ctx context.Context, id domain.CaregiverID) (*Caregiver, error) {
	const q = `
		SELECT id, first_name, last_name, phone_number, relationship, language_preference, created_at
		FROM caregivers WHERE id = $1`

	row := s.queryer(ctx).QueryRowContext(ctx, q, id.String())

	var (
		c     Caregiver
		rawID string
		rel   string
	)
	err := row.Scan(&rawID, &c.FirstName, &c.LastName, &c.PhoneNumber, &rel, &c.LanguagePreference, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select caregiver: %w", err)
	}
	if c.ID, err = domain.ParseCaregiverID(rawID); err != nil {
		return nil, fmt.Errorf("parse caregiver id: %w", err)
	}
	c.Relationship = Relationship(rel)
	return &c, nil
}

func (s *PostgresStore) CreateChild(ctx context.Context, child *Child) error {
	const q = `
		INSERT INTO children (
			id, caregiver_id, code, first_name, last_name, date_of_birth, sex,
			birth_weight_kg, birth_height_cm, gestational_age_weeks,
			is_at_risk, enrollment_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.queryer(ctx).ExecContext(ctx, q,
		child.ID.String(),
		child.CaregiverID.String(),
		child.Code,
		child.FirstName,
		child.LastName,
		child.DateOfBirth,
		string(child.Sex),
		child.BirthWeightKg,
		child.BirthHeightCm,
		child.GestationalAgeWeeks,
		child.IsAtRisk,
		child.EnrollmentDate,
		child.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrDuplicate
		}
		return fmt.Errorf("insert child: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetChild(ctx context.Context, id domain.ChildID) (*Child, error) {
	const q = childSelect + ` WHERE id = $1`

	row := s.queryer(ctx).QueryRowContext(ctx, q, id.String())
	c, err := scanChild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select child: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListChildrenByCaregiver(ctx context.Context, caregiverID domain.CaregiverID) ([]*Child, error) {
	const q = childSelect + ` WHERE caregiver_id = $1 ORDER BY enrollment_date`

	rows, err := s.queryer(ctx).QueryContext(ctx, q, caregiverID.String())
	if err != nil {
		return nil, fmt.Errorf("select children: %w", err)
	}
	defer rows.Close()

	var out []*Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SetAtRisk(ctx context.Context, id domain.ChildID, atRisk bool) error {
	const q = `UPDATE children SET is_at_risk = $1, updated_at = now() WHERE id = $2`

	res, err := s.queryer(ctx).ExecContext(ctx, q, atRisk, id.String())
	if err != nil {
		return fmt.Errorf("update child risk flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const childSelect = `
	SELECT id, caregiver_id, code, first_name, last_name, date_of_birth, sex,
	       birth_weight_kg, birth_height_cm, gestational_age_weeks,
	       is_at_risk, enrollment_date, updated_at
	FROM children`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChild(row rowScanner) (*Child, error) {
	var (
		c              Child
		rawID, rawCG   string
		sex            string
		weight, height sql.NullFloat64
		gestation      sql.NullInt64
	)
	err := row.Scan(
		&rawID, &rawCG, &c.Code, &c.FirstName, &c.LastName, &c.DateOfBirth, &sex,
		&weight, &height, &gestation,
		&c.IsAtRisk, &c.EnrollmentDate, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.ID, err = domain.ParseChildID(rawID); err != nil {
		return nil, fmt.Errorf("parse child id: %w", err)
	}
	if c.CaregiverID, err = domain.ParseCaregiverID(rawCG); err != nil {
		return nil, fmt.Errorf("parse caregiver id: %w", err)
	}
	c.Sex = Sex(sex)
	if weight.Valid {
		c.BirthWeightKg = &weight.Float64
	}
	if height.Valid {
		c.BirthHeightCm = &height.Float64
	}
	if gestation.Valid {
		v := int(gestation.Int64)
		c.GestationalAgeWeeks = &v
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
