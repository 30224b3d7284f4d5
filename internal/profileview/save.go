package profileview

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/model"
)

// save runs fn as the save of section s.  The section is Saving while fn
// runs and ends Succeeded or Failed with the section's message.  A
// validation error becomes the failure message itself.
func (v *View) save(ctx context.Context, s Section, fn func(context.Context) error) error {
	v.mu.Lock()
	if v.status[s].Phase == Saving {
		v.mu.Unlock()
		return ErrSaveInProgress
	}
	v.status[s] = Status{Phase: Saving}
	v.mu.Unlock()

	err := fn(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	msg := saveMessages[s]
	expires := v.clock.Now().Add(MessageTTL)
	if err != nil {
		text := msg.fail
		var fe *model.FieldError
		if errors.As(err, &fe) {
			text = fe.Error()
		} else {
			v.log.Warn("profile section save failed", zap.String("section", string(s)), zap.Error(err))
		}
		v.status[s] = Status{Phase: Failed, Message: text, ExpiresAt: expires}
		return err
	}
	v.status[s] = Status{Phase: Succeeded, Message: msg.ok, ExpiresAt: expires}
	return nil
}

// SaveProfile sends the whole local profile.  The local copy is kept as
// it is on success, so edits made while the request is in flight survive.
func (v *View) SaveProfile(ctx context.Context) error {
	return v.save(ctx, SectionProfile, func(ctx context.Context) error {
		_, err := v.api.UpdateProfile(ctx, v.Profile())
		return err
	})
}

// SaveNextOfKin validates the local next of kin before sending it.
func (v *View) SaveNextOfKin(ctx context.Context) error {
	return v.save(ctx, SectionNextOfKin, func(ctx context.Context) error {
		kin := v.NextOfKin()
		if err := kin.Validate(); err != nil {
			return err
		}
		_, err := v.api.UpdateNextOfKin(ctx, kin)
		return err
	})
}

// SaveMedical sends the medical payload.  Hidden details stay in the
// local form.
func (v *View) SaveMedical(ctx context.Context) error {
	return v.save(ctx, SectionMedical, func(ctx context.Context) error {
		form := v.Medical()
		_, err := v.api.UpdateMedicalInfo(ctx, form.Payload())
		return err
	})
}

// AddCertificate validates and posts the draft, clears it, then reloads
// the list.  When the reload fails the created certificate is appended
// locally instead.
func (v *View) AddCertificate(ctx context.Context) error {
	return v.save(ctx, SectionCertificates, func(ctx context.Context) error {
		draft := v.Draft()
		if err := draft.Validate(); err != nil {
			return err
		}
		created, err := v.api.CreateCertificate(ctx, draft)
		if err != nil {
			return err
		}
		v.SetDraft(model.Certificate{})

		certs, err := v.api.Certificates(ctx)
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.log.Warn("certificate list reload failed", zap.Error(err))
			v.certs = append(v.certs, created)
			return nil
		}
		v.certs = certs
		return nil
	})
}

// SaveSignature exports pad and stores it.  The local signature is set
// to what was sent; the server copy is not fetched again.
func (v *View) SaveSignature(ctx context.Context, pad Encoder) error {
	return v.save(ctx, SectionSignature, func(ctx context.Context) error {
		data, err := pad.Encode()
		if err != nil {
			return err
		}
		sig := model.ElectronicSignature{SignatureData: data, SignatureType: model.SignatureTypeDrawn}
		if _, err := v.api.UpdateSignature(ctx, sig); err != nil {
			return err
		}
		v.mu.Lock()
		v.signature = sig
		v.mu.Unlock()
		return nil
	})
}
