package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vessel-management/internal/model"
)

// VesselRepo provides CRUD over `vessels`.  Deleting a vessel leaves its
// maintenance, safety and crew rows untouched.
type VesselRepo struct{ DB *sql.DB }

func NewVesselRepo(db *sql.DB) *VesselRepo { return &VesselRepo{DB: db} }

const vesselColumns = "id, name, imo_number, vessel_type, flag_state, gross_tonnage, length, beam, year_built, is_active, created_at"

func scanVessel(s scanner) (model.Vessel, error) {
	var v model.Vessel
	err := s.Scan(&v.ID, &v.Name, &v.IMONumber, &v.VesselType, &v.FlagState,
		&v.GrossTonnage, &v.Length, &v.Beam, &v.YearBuilt, &v.IsActive, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// List returns vessels newest first, at most limit rows when limit > 0.
func (r *VesselRepo) List(ctx context.Context, limit int) ([]model.Vessel, error) {
	q := "SELECT " + vesselColumns + " FROM vessels ORDER BY created_at DESC, id DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Vessel{}
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VesselRepo) GetByID(ctx context.Context, id uint64) (model.Vessel, error) {
	return scanVessel(r.DB.QueryRowContext(ctx, "SELECT "+vesselColumns+" FROM vessels WHERE id = ?", id))
}

// Create inserts v and returns the stored row.
func (r *VesselRepo) Create(ctx context.Context, v model.Vessel) (model.Vessel, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO vessels (name, imo_number, vessel_type, flag_state, gross_tonnage, length, beam, year_built, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		v.Name, v.IMONumber, v.VesselType, v.FlagState, v.GrossTonnage, v.Length, v.Beam, v.YearBuilt, v.IsActive)
	if err != nil {
		return model.Vessel{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Vessel{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces every editable column of vessel id.
func (r *VesselRepo) Update(ctx context.Context, id uint64, v model.Vessel) (model.Vessel, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE vessels SET name=?, imo_number=?, vessel_type=?, flag_state=?, gross_tonnage=?,
		        length=?, beam=?, year_built=?, is_active=?
		 WHERE id=?`,
		v.Name, v.IMONumber, v.VesselType, v.FlagState, v.GrossTonnage, v.Length, v.Beam, v.YearBuilt, v.IsActive, id)
	if err != nil {
		return model.Vessel{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Vessel{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *VesselRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.DB, "vessels", id)
}

// Counts returns the total and active vessel counts.
func (r *VesselRepo) Counts(ctx context.Context) (total, active int, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM vessels").Scan(&total, &active)
	return total, active, err
}

// deleteByID removes one row from table; table is always a constant.
func deleteByID(ctx context.Context, db *sql.DB, table string, id uint64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func countWhere(ctx context.Context, db *sql.DB, table, column, value string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE "+column+" = ?", value).Scan(&n)
	return n, err
}
