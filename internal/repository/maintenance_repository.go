package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vessel-management/internal/model"
)

// MaintenanceRepo provides CRUD over `maintenance_records`.
type MaintenanceRepo struct{ DB *sql.DB }

func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{DB: db} }

const maintenanceColumns = `id, vessel_id, title, description, maintenance_type, scheduled_date,
	completed_date, status, assigned_to, cost, created_by, created_at`

func scanMaintenance(s scanner) (model.MaintenanceTask, error) {
	var m model.MaintenanceTask
	err := s.Scan(&m.ID, &m.VesselID, &m.Title, &m.Description, &m.MaintenanceType, &m.ScheduledDate,
		&m.CompletedDate, &m.Status, &m.AssignedTo, &m.Cost, &m.CreatedBy, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, err
}

// List returns tasks newest first.  vesselID 0 means every vessel and
// limit 0 means no limit.
func (r *MaintenanceRepo) List(ctx context.Context, vesselID uint64, limit int) ([]model.MaintenanceTask, error) {
	q := "SELECT " + maintenanceColumns + " FROM maintenance_records"
	var args []any
	if vesselID != 0 {
		q += " WHERE vessel_id = ?"
		args = append(args, vesselID)
	}
	q += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MaintenanceTask{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id uint64) (model.MaintenanceTask, error) {
	return scanMaintenance(r.DB.QueryRowContext(ctx, "SELECT "+maintenanceColumns+" FROM maintenance_records WHERE id = ?", id))
}

// Create inserts m; an empty status becomes pending.
func (r *MaintenanceRepo) Create(ctx context.Context, m model.MaintenanceTask) (model.MaintenanceTask, error) {
	if m.Status == "" {
		m.Status = model.MaintenancePending
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO maintenance_records
		   (vessel_id, title, description, maintenance_type, scheduled_date, completed_date, status, assigned_to, cost, created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		m.VesselID, m.Title, m.Description, m.MaintenanceType, m.ScheduledDate, m.CompletedDate,
		m.Status, m.AssignedTo, m.Cost, m.CreatedBy)
	if err != nil {
		return model.MaintenanceTask{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MaintenanceTask{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces the editable columns of task id.  created_by is kept.
func (r *MaintenanceRepo) Update(ctx context.Context, id uint64, m model.MaintenanceTask) (model.MaintenanceTask, error) {
	if m.Status == "" {
		m.Status = model.MaintenancePending
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE maintenance_records SET vessel_id=?, title=?, description=?, maintenance_type=?,
		        scheduled_date=?, completed_date=?, status=?, assigned_to=?, cost=?
		 WHERE id=?`,
		m.VesselID, m.Title, m.Description, m.MaintenanceType, m.ScheduledDate, m.CompletedDate,
		m.Status, m.AssignedTo, m.Cost, id)
	if err != nil {
		return model.MaintenanceTask{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.MaintenanceTask{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MaintenanceRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.DB, "maintenance_records", id)
}

// CountPending returns the number of tasks still pending.
func (r *MaintenanceRepo) CountPending(ctx context.Context) (int, error) {
	return countWhere(ctx, r.DB, "maintenance_records", "status", model.MaintenancePending)
}
