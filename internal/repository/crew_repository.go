package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vessel-management/internal/model"
)

// CrewRepo provides CRUD over `crew_assignments`.
type CrewRepo struct{ DB *sql.DB }

func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{DB: db} }

const crewColumns = "id, user_id, vessel_id, position, start_date, end_date, is_active"

func scanCrew(s scanner) (model.CrewAssignment, error) {
	var a model.CrewAssignment
	err := s.Scan(&a.ID, &a.UserID, &a.VesselID, &a.Position, &a.StartDate, &a.EndDate, &a.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

// CrewFilter narrows List.  Zero fields are ignored.
type CrewFilter struct {
	UserID   uint64
	VesselID uint64
}

func (r *CrewRepo) List(ctx context.Context, f CrewFilter) ([]model.CrewAssignment, error) {
	q := "SELECT " + crewColumns + " FROM crew_assignments WHERE 1=1"
	var args []any
	if f.UserID != 0 {
		q += " AND user_id = ?"
		args = append(args, f.UserID)
	}
	if f.VesselID != 0 {
		q += " AND vessel_id = ?"
		args = append(args, f.VesselID)
	}
	q += " ORDER BY id"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CrewAssignment{}
	for rows.Next() {
		a, err := scanCrew(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (model.CrewAssignment, error) {
	return scanCrew(r.DB.QueryRowContext(ctx, "SELECT "+crewColumns+" FROM crew_assignments WHERE id = ?", id))
}

// GetActiveForUser returns the newest active assignment of userID.
func (r *CrewRepo) GetActiveForUser(ctx context.Context, userID uint64) (model.CrewAssignment, error) {
	return scanCrew(r.DB.QueryRowContext(ctx,
		"SELECT "+crewColumns+" FROM crew_assignments WHERE user_id = ? AND is_active = 1 ORDER BY id DESC LIMIT 1",
		userID))
}

// Create deactivates the user's current assignments and inserts a as the
// new active one, in a single transaction.
func (r *CrewRepo) Create(ctx context.Context, a model.CrewAssignment) (created model.CrewAssignment, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.CrewAssignment{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		"UPDATE crew_assignments SET is_active = 0 WHERE user_id = ? AND is_active = 1", a.UserID); err != nil {
		return model.CrewAssignment{}, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO crew_assignments (user_id, vessel_id, position, start_date, end_date, is_active) VALUES (?,?,?,?,?,1)",
		a.UserID, a.VesselID, a.Position, a.StartDate, a.EndDate)
	if err != nil {
		return model.CrewAssignment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CrewAssignment{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.CrewAssignment{}, err
	}
	a.ID = uint64(id)
	a.IsActive = true
	return a, nil
}

// Update replaces assignment id.
func (r *CrewRepo) Update(ctx context.Context, id uint64, a model.CrewAssignment) (model.CrewAssignment, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE crew_assignments SET user_id=?, vessel_id=?, position=?, start_date=?, end_date=?, is_active=? WHERE id=?",
		a.UserID, a.VesselID, a.Position, a.StartDate, a.EndDate, a.IsActive, id)
	if err != nil {
		return model.CrewAssignment{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.CrewAssignment{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.DB, "crew_assignments", id)
}
