package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/clock"
	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/queue"
	"github.com/iliyamo/vessel-management/internal/repository"
	"github.com/iliyamo/vessel-management/internal/service"
)

// ProfileHandler serves the five sections of a crew member's profile:
// personal details, next of kin, medical info, certificates and the
// electronic signature.  Every route acts on the caller's own account.
type ProfileHandler struct {
	Profiles   *repository.ProfileRepo
	Kin        *repository.NextOfKinRepo
	Medical    *repository.MedicalRepo
	Certs      *repository.CertificateRepo
	Signatures *repository.SignatureRepo
	Publisher  service.Publisher
	Clock      clock.Clock
	Log        *zap.Logger
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	p, err := h.Profiles.Get(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return emptyObject(c)
	}
	if err != nil {
		return fail(c, h.Log, "load", "profile", err)
	}
	return c.JSON(http.StatusOK, p)
}

// PutProfile replaces the whole profile and returns the stored row.
func (h *ProfileHandler) PutProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var p model.Profile
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid body")
	}
	p.UserID = uid

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Profiles.Upsert(ctx, p); err != nil {
		return fail(c, h.Log, "update", "profile", err)
	}
	stored, err := h.Profiles.Get(ctx, uid)
	if err != nil {
		return fail(c, h.Log, "load", "profile", err)
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *ProfileHandler) GetNextOfKin(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	n, err := h.Kin.Get(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return emptyObject(c)
	}
	if err != nil {
		return fail(c, h.Log, "load", "next of kin", err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *ProfileHandler) PutNextOfKin(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var n model.NextOfKin
	if err := c.Bind(&n); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := n.Validate(); err != nil {
		return fail(c, h.Log, "update", "next of kin", err)
	}
	n.UserID = uid

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Kin.Upsert(ctx, n); err != nil {
		return fail(c, h.Log, "update", "next of kin", err)
	}
	stored, err := h.Kin.Get(ctx, uid)
	if err != nil {
		return fail(c, h.Log, "load", "next of kin", err)
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *ProfileHandler) GetMedical(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	m, err := h.Medical.Get(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return emptyObject(c)
	}
	if err != nil {
		return fail(c, h.Log, "load", "medical info", err)
	}
	return c.JSON(http.StatusOK, m)
}

// PutMedical stores the declaration as sent.  Detail text is kept even
// when its flag is false.
func (h *ProfileHandler) PutMedical(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var m model.MedicalInfo
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid body")
	}
	m.UserID = uid

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Medical.Upsert(ctx, m); err != nil {
		return fail(c, h.Log, "update", "medical info", err)
	}
	stored, err := h.Medical.Get(ctx, uid)
	if err != nil {
		return fail(c, h.Log, "load", "medical info", err)
	}
	return c.JSON(http.StatusOK, stored)
}

// ListCertificates returns the caller's certificates with status derived
// from today's date.
func (h *ProfileHandler) ListCertificates(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	certs, err := h.Certs.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, h.Log, "list", "certificates", err)
	}
	now := h.Clock.Now()
	for i := range certs {
		certs[i] = certs[i].WithStatus(now)
	}
	return c.JSON(http.StatusOK, certs)
}

// CreateCertificate appends a certificate and announces it on the
// compliance queue.
func (h *ProfileHandler) CreateCertificate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var in model.Certificate
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := in.Validate(); err != nil {
		return fail(c, h.Log, "create", "certificate", err)
	}
	in.UserID = uid

	ctx, cancel := dbContext(c)
	defer cancel()
	cert, err := h.Certs.Create(ctx, in)
	if err != nil {
		return fail(c, h.Log, "create", "certificate", err)
	}
	now := h.Clock.Now()
	cert = cert.WithStatus(now)
	h.announce(c.Request().Context(), cert, now)
	return c.JSON(http.StatusCreated, cert)
}

func (h *ProfileHandler) announce(ctx context.Context, cert model.Certificate, now time.Time) {
	if h.Publisher == nil {
		return
	}
	ev := queue.ComplianceEvent{
		MessageID:       uuid.NewString(),
		Kind:            queue.KindCertificateAdded,
		UserID:          cert.UserID,
		CertificateID:   cert.ID,
		CertificateType: string(cert.CertificateType),
		IssuedBy:        cert.IssuedBy,
		ExpiryDate:      cert.ExpiryDate.String(),
		Status:          string(cert.Status),
		OccurredAt:      now,
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := h.Publisher.PublishCompliance(ctx, ev); err != nil {
			h.Log.Warn("publish certificate event failed", zap.Uint64("certificate_id", ev.CertificateID), zap.Error(err))
		}
	}()
}

func (h *ProfileHandler) GetSignature(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	s, err := h.Signatures.Get(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return emptyObject(c)
	}
	if err != nil {
		return fail(c, h.Log, "load", "electronic signature", err)
	}
	return c.JSON(http.StatusOK, s)
}

// PutSignature overwrites the caller's signature slot.
func (h *ProfileHandler) PutSignature(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var s model.ElectronicSignature
	if err := c.Bind(&s); err != nil {
		return badRequest(c, "invalid body")
	}
	if s.SignatureData == "" {
		return badRequest(c, "signature_data is required")
	}
	s.UserID = uid

	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Signatures.Upsert(ctx, s); err != nil {
		return fail(c, h.Log, "update", "electronic signature", err)
	}
	stored, err := h.Signatures.Get(ctx, uid)
	if err != nil {
		return fail(c, h.Log, "load", "electronic signature", err)
	}
	return c.JSON(http.StatusOK, stored)
}
