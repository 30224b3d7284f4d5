package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vessel-management/internal/model"
)

// SafetyRepo provides CRUD over `safety_records`.
type SafetyRepo struct{ DB *sql.DB }

func NewSafetyRepo(db *sql.DB) *SafetyRepo { return &SafetyRepo{DB: db} }

const safetyColumns = `id, vessel_id, incident_type, description, incident_date, severity,
	status, corrective_actions, reported_by, created_at`

func scanSafety(s scanner) (model.SafetyRecord, error) {
	var rec model.SafetyRecord
	err := s.Scan(&rec.ID, &rec.VesselID, &rec.IncidentType, &rec.Description, &rec.IncidentDate, &rec.Severity,
		&rec.Status, &rec.CorrectiveActions, &rec.ReportedBy, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

// List returns records newest first, filtered by vesselID when non-zero.
func (r *SafetyRepo) List(ctx context.Context, vesselID uint64, limit int) ([]model.SafetyRecord, error) {
	q := "SELECT " + safetyColumns + " FROM safety_records"
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

	out := []model.SafetyRecord{}
	for rows.Next() {
		rec, err := scanSafety(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SafetyRepo) GetByID(ctx context.Context, id uint64) (model.SafetyRecord, error) {
	return scanSafety(r.DB.QueryRowContext(ctx, "SELECT "+safetyColumns+" FROM safety_records WHERE id = ?", id))
}

// Create inserts rec; an empty status becomes open.
func (r *SafetyRepo) Create(ctx context.Context, rec model.SafetyRecord) (model.SafetyRecord, error) {
	if rec.Status == "" {
		rec.Status = model.SafetyOpen
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO safety_records
		   (vessel_id, incident_type, description, incident_date, severity, status, corrective_actions, reported_by)
		 VALUES (?,?,?,?,?,?,?,?)`,
		rec.VesselID, rec.IncidentType, rec.Description, rec.IncidentDate, rec.Severity,
		rec.Status, rec.CorrectiveActions, rec.ReportedBy)
	if err != nil {
		return model.SafetyRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.SafetyRecord{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces the editable columns of record id.  reported_by is kept.
func (r *SafetyRepo) Update(ctx context.Context, id uint64, rec model.SafetyRecord) (model.SafetyRecord, error) {
	if rec.Status == "" {
		rec.Status = model.SafetyOpen
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE safety_records SET vessel_id=?, incident_type=?, description=?, incident_date=?,
		        severity=?, status=?, corrective_actions=?
		 WHERE id=?`,
		rec.VesselID, rec.IncidentType, rec.Description, rec.IncidentDate,
		rec.Severity, rec.Status, rec.CorrectiveActions, id)
	if err != nil {
		return model.SafetyRecord{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.SafetyRecord{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *SafetyRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.DB, "safety_records", id)
}

// CountOpen returns the number of open incidents.
func (r *SafetyRepo) CountOpen(ctx context.Context) (int, error) {
	return countWhere(ctx, r.DB, "safety_records", "status", model.SafetyOpen)
}
