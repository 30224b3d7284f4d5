package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vessel-management/internal/model"
)

// CertificateRepo appends to and lists `certificates`.  Rows are never
// updated or deleted.
type CertificateRepo struct{ DB *sql.DB }

func NewCertificateRepo(db *sql.DB) *CertificateRepo { return &CertificateRepo{DB: db} }

const certificateColumns = "id, user_id, certificate_type, valid_from, expiry_date, issued_by, file_path, created_at"

func scanCertificate(s scanner) (model.Certificate, error) {
	var c model.Certificate
	err := s.Scan(&c.ID, &c.UserID, &c.CertificateType, &c.ValidFrom, &c.ExpiryDate, &c.IssuedBy, &c.FilePath, &c.CreatedAt)
	return c, err
}

// Create inserts c and returns the stored row.
func (r *CertificateRepo) Create(ctx context.Context, c model.Certificate) (model.Certificate, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO certificates (user_id, certificate_type, valid_from, expiry_date, issued_by, file_path) VALUES (?,?,?,?,?,?)",
		c.UserID, string(c.CertificateType), c.ValidFrom, c.ExpiryDate, c.IssuedBy, c.FilePath)
	if err != nil {
		return model.Certificate{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Certificate{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *CertificateRepo) GetByID(ctx context.Context, id uint64) (model.Certificate, error) {
	c, err := scanCertificate(r.DB.QueryRowContext(ctx, "SELECT "+certificateColumns+" FROM certificates WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Certificate{}, ErrNotFound
	}
	return c, err
}

// ListByUser returns the certificates of userID in insertion order.
func (r *CertificateRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Certificate, error) {
	return r.list(ctx, "SELECT "+certificateColumns+" FROM certificates WHERE user_id = ? ORDER BY id", userID)
}

// ListExpiringBetween returns every certificate whose expiry date lies in
// [from, to], across all accounts.
func (r *CertificateRepo) ListExpiringBetween(ctx context.Context, from, to model.Date) ([]model.Certificate, error) {
	return r.list(ctx,
		"SELECT "+certificateColumns+" FROM certificates WHERE expiry_date BETWEEN ? AND ? ORDER BY expiry_date, id",
		from, to)
}

func (r *CertificateRepo) list(ctx context.Context, q string, args ...any) ([]model.Certificate, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
