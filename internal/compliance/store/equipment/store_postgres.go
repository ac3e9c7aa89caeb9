package equipment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"complytrack/internal/compliance/models"
	id "complytrack/pkg/domain"
)

// Schema is the DDL for the equipment table. Integration tests apply it
// against a disposable container.
const Schema = `
CREATE TABLE IF NOT EXISTS equipment_compliance (
	id                    UUID PRIMARY KEY,
	requirement_id        UUID NOT NULL,
	equipment_type        TEXT NOT NULL DEFAULT '',
	status                TEXT NOT NULL,
	next_inspection_date  TIMESTAMPTZ NOT NULL,
	next_maintenance_date TIMESTAMPTZ NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL,
	is_deleted            BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at            TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_equipment_requirement
	ON equipment_compliance (requirement_id) WHERE NOT is_deleted;
`

// PostgresStore is the SQL-backed equipment store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates an equipment store on the given database handle.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, eq *models.Equipment) error {
	query := `
		INSERT INTO equipment_compliance
			(id, requirement_id, equipment_type, status, next_inspection_date,
			 next_maintenance_date, created_at, updated_at, is_deleted, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(eq.ID), uuid.UUID(eq.RequirementID), eq.EquipmentType,
		string(eq.Status), eq.NextInspectionDate, eq.NextMaintenanceDate,
		eq.CreatedAt, eq.UpdatedAt, eq.IsDeleted, eq.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRequirement(ctx context.Context, reqID id.RequirementID) ([]*models.Equipment, error) {
	query := `
		SELECT id, requirement_id, equipment_type, status, next_inspection_date,
			next_maintenance_date, created_at, updated_at, is_deleted, deleted_at
		FROM equipment_compliance
		WHERE requirement_id = $1 AND NOT is_deleted
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(reqID))
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	items := []*models.Equipment{}
	for rows.Next() {
		var (
			eq        models.Equipment
			eqID      uuid.UUID
			parentID  uuid.UUID
			status    string
			deletedAt sql.NullTime
		)
		if err := rows.Scan(
			&eqID, &parentID, &eq.EquipmentType, &status,
			&eq.NextInspectionDate, &eq.NextMaintenanceDate,
			&eq.CreatedAt, &eq.UpdatedAt, &eq.IsDeleted, &deletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		eq.ID = id.EquipmentID(eqID)
		eq.RequirementID = id.RequirementID(parentID)
		eq.Status = id.RequirementStatus(status)
		if deletedAt.Valid {
			t := deletedAt.Time
			eq.DeletedAt = &t
		}
		items = append(items, &eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) SoftDeleteByRequirement(ctx context.Context, reqID id.RequirementID, now time.Time) (int, error) {
	query := `
		UPDATE equipment_compliance
		SET is_deleted = TRUE, deleted_at = $2, updated_at = $2
		WHERE requirement_id = $1 AND NOT is_deleted
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(reqID), now)
	if err != nil {
		return 0, fmt.Errorf("cascade delete equipment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cascade delete equipment: %w", err)
	}
	return int(affected), nil
}
