package requirement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"complytrack/internal/compliance/models"
	id "complytrack/pkg/domain"
	"complytrack/pkg/platform/sentinel"
)

// Schema is the DDL for the requirements table. Integration tests apply it
// against a disposable container; production deployments manage it through
// their migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS compliance_requirements (
	id                   UUID PRIMARY KEY,
	tenant_id            UUID NOT NULL,
	site_id              UUID,
	title                TEXT NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	category             TEXT NOT NULL,
	compliance_type      TEXT NOT NULL DEFAULT '',
	priority             TEXT NOT NULL,
	frequency            TEXT NOT NULL,
	last_inspection_date TIMESTAMPTZ,
	next_inspection_date TIMESTAMPTZ NOT NULL,
	last_audit_date      TIMESTAMPTZ,
	status               TEXT NOT NULL,
	assigned_to          UUID,
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL,
	is_deleted           BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at           TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_requirements_tenant
	ON compliance_requirements (tenant_id) WHERE NOT is_deleted;
CREATE INDEX IF NOT EXISTS idx_requirements_due
	ON compliance_requirements (tenant_id, next_inspection_date) WHERE NOT is_deleted;
`

// PostgresStore is the SQL-backed requirement store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a requirement store on the given database handle.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requirementColumns = `id, tenant_id, site_id, title, description, category,
	compliance_type, priority, frequency, last_inspection_date,
	next_inspection_date, last_audit_date, status, assigned_to,
	created_at, updated_at, is_deleted, deleted_at`

func (s *PostgresStore) Create(ctx context.Context, req *models.Requirement) error {
	query := `
		INSERT INTO compliance_requirements (` + requirementColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(req.ID), uuid.UUID(req.TenantID), siteUUID(req.SiteID),
		req.Title, req.Description, string(req.Category),
		req.ComplianceType, string(req.Priority), string(req.Frequency),
		req.LastInspectionDate, req.NextInspectionDate, req.LastAuditDate,
		string(req.Status), userUUID(req.AssignedTo),
		req.CreatedAt, req.UpdatedAt, req.IsDeleted, req.DeletedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert requirement: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) (*models.Requirement, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM compliance_requirements
		WHERE id = $1 AND tenant_id = $2 AND NOT is_deleted
	`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(reqID), uuid.UUID(tenantID))
	req, err := scanRequirement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find requirement: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) Update(ctx context.Context, req *models.Requirement) error {
	query := `
		UPDATE compliance_requirements
		SET site_id = $3, title = $4, description = $5, category = $6,
			compliance_type = $7, priority = $8, frequency = $9,
			last_inspection_date = $10, next_inspection_date = $11,
			last_audit_date = $12, status = $13, assigned_to = $14,
			updated_at = $15, is_deleted = $16, deleted_at = $17
		WHERE id = $1 AND tenant_id = $2 AND NOT is_deleted
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(req.ID), uuid.UUID(req.TenantID), siteUUID(req.SiteID),
		req.Title, req.Description, string(req.Category),
		req.ComplianceType, string(req.Priority), string(req.Frequency),
		req.LastInspectionDate, req.NextInspectionDate, req.LastAuditDate,
		string(req.Status), userUUID(req.AssignedTo),
		req.UpdatedAt, req.IsDeleted, req.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update requirement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update requirement: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.Requirement, int, error) {
	where, args := buildFilter(filter)

	countQuery := `SELECT COUNT(*) FROM compliance_requirements ` + where
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requirements: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT `+requirementColumns+`
		FROM compliance_requirements %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	items, err := collectRequirements(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PostgresStore) ListActive(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) ([]*models.Requirement, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM compliance_requirements
		WHERE tenant_id = $1 AND NOT is_deleted
	`
	args := []any{uuid.UUID(tenantID)}
	if siteID != nil {
		query += ` AND site_id = $2`
		args = append(args, uuid.UUID(*siteID))
	}
	query += ` ORDER BY next_inspection_date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active requirements: %w", err)
	}
	defer rows.Close()

	return collectRequirements(rows)
}

func buildFilter(f models.ListFilter) (string, []any) {
	clauses := []string{"tenant_id = $1", "NOT is_deleted"}
	args := []any{uuid.UUID(f.TenantID)}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.SiteID != nil {
		add("site_id = $%d", uuid.UUID(*f.SiteID))
	}
	if f.Category != "" {
		add("category = $%d", string(f.Category))
	}
	if f.ComplianceType != "" {
		add("LOWER(compliance_type) = LOWER($%d)", f.ComplianceType)
	}
	if f.Priority != "" {
		add("priority = $%d", string(f.Priority))
	}
	if !f.AssignedTo.IsNil() {
		add("assigned_to = $%d", uuid.UUID(f.AssignedTo))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequirement(row rowScanner) (*models.Requirement, error) {
	var (
		req        models.Requirement
		reqID      uuid.UUID
		tenantID   uuid.UUID
		siteID     uuid.NullUUID
		assignedTo uuid.NullUUID
		lastInsp   sql.NullTime
		lastAudit  sql.NullTime
		deletedAt  sql.NullTime
		category   string
		priority   string
		frequency  string
		status     string
	)
	err := row.Scan(
		&reqID, &tenantID, &siteID, &req.Title, &req.Description, &category,
		&req.ComplianceType, &priority, &frequency, &lastInsp,
		&req.NextInspectionDate, &lastAudit, &status, &assignedTo,
		&req.CreatedAt, &req.UpdatedAt, &req.IsDeleted, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	req.ID = id.RequirementID(reqID)
	req.TenantID = id.TenantID(tenantID)
	if siteID.Valid {
		sid := id.SiteID(siteID.UUID)
		req.SiteID = &sid
	}
	if assignedTo.Valid {
		req.AssignedTo = id.UserID(assignedTo.UUID)
	}
	if lastInsp.Valid {
		t := lastInsp.Time
		req.LastInspectionDate = &t
	}
	if lastAudit.Valid {
		t := lastAudit.Time
		req.LastAuditDate = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		req.DeletedAt = &t
	}
	req.Category = id.Category(category)
	req.Priority = id.Priority(priority)
	req.Frequency = id.Frequency(frequency)
	req.Status = id.RequirementStatus(status)
	return &req, nil
}

func collectRequirements(rows *sql.Rows) ([]*models.Requirement, error) {
	items := []*models.Requirement{}
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		items = append(items, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requirements: %w", err)
	}
	return items, nil
}

func siteUUID(siteID *id.SiteID) any {
	if siteID == nil {
		return nil
	}
	return uuid.UUID(*siteID)
}

func userUUID(userID id.UserID) any {
	if userID.IsNil() {
		return nil
	}
	return uuid.UUID(userID)
}
