// Package profileview is the client-side profile editor.  It loads the
// five sections of a crew member's profile concurrently and saves each
// one on its own, tracking a short-lived status message per section.
package profileview

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/clock"
	"github.com/iliyamo/vessel-management/internal/model"
)

// ErrSaveInProgress is returned when a section is saved while its
// previous save is still running.
var ErrSaveInProgress = errors.New("save already in progress")

// API is the part of client.Client the view uses.
type API interface {
	Profile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	NextOfKin(ctx context.Context) (model.NextOfKin, error)
	UpdateNextOfKin(ctx context.Context, n model.NextOfKin) (model.NextOfKin, error)
	MedicalInfo(ctx context.Context) (model.MedicalInfo, error)
	UpdateMedicalInfo(ctx context.Context, m model.MedicalInfo) (model.MedicalInfo, error)
	Certificates(ctx context.Context) ([]model.Certificate, error)
	CreateCertificate(ctx context.Context, c model.Certificate) (model.Certificate, error)
	Signature(ctx context.Context) (model.ElectronicSignature, error)
	UpdateSignature(ctx context.Context, s model.ElectronicSignature) (model.ElectronicSignature, error)
}

// Encoder produces the signature image; *signature.Pad implements it.
type Encoder interface {
	Encode() (string, error)
}

type View struct {
	api   API
	clock clock.Clock
	log   *zap.Logger

	mu        sync.Mutex
	profile   model.Profile
	kin       model.NextOfKin
	medical   MedicalForm
	certs     []model.Certificate
	draft     model.Certificate
	signature model.ElectronicSignature
	loads     map[Section]SectionLoad
	status    map[Section]Status
}

func New(api API, clk clock.Clock, log *zap.Logger) *View {
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	v := &View{
		api:    api,
		clock:  clk,
		log:    log,
		loads:  map[Section]SectionLoad{},
		status: map[Section]Status{},
	}
	for _, s := range Sections {
		v.loads[s] = SectionLoad{State: Pending}
	}
	return v
}

// Load fetches all five sections concurrently and returns once every
// fetch has finished.  Each section ends Loaded or LoadFailed on its own;
// a failed fetch leaves that section empty and does not affect the
// others.
func (v *View) Load(ctx context.Context) {
	fetches := map[Section]func(context.Context) error{
		SectionProfile: func(ctx context.Context) error {
			p, err := v.api.Profile(ctx)
			if err == nil {
				v.mu.Lock()
				v.profile = p
				v.mu.Unlock()
			}
			return err
		},
		SectionNextOfKin: func(ctx context.Context) error {
			n, err := v.api.NextOfKin(ctx)
			if err == nil {
				v.mu.Lock()
				v.kin = n
				v.mu.Unlock()
			}
			return err
		},
		SectionMedical: func(ctx context.Context) error {
			m, err := v.api.MedicalInfo(ctx)
			if err == nil {
				v.mu.Lock()
				v.medical = MedicalForm{MedicalInfo: m}
				v.mu.Unlock()
			}
			return err
		},
		SectionCertificates: func(ctx context.Context) error {
			certs, err := v.api.Certificates(ctx)
			if err == nil {
				v.mu.Lock()
				v.certs = certs
				v.mu.Unlock()
			}
			return err
		},
		SectionSignature: func(ctx context.Context) error {
			s, err := v.api.Signature(ctx)
			if err == nil {
				v.mu.Lock()
				v.signature = s
				v.mu.Unlock()
			}
			return err
		},
	}

	v.mu.Lock()
	for s := range fetches {
		v.loads[s] = SectionLoad{State: Pending}
	}
	v.mu.Unlock()

	var wg sync.WaitGroup
	for s, fetch := range fetches {
		wg.Add(1)
		go func(s Section, fetch func(context.Context) error) {
			defer wg.Done()
			err := fetch(ctx)
			v.mu.Lock()
			defer v.mu.Unlock()
			if err != nil {
				v.log.Warn("profile section fetch failed", zap.String("section", string(s)), zap.Error(err))
				v.loads[s] = SectionLoad{State: LoadFailed, Err: err}
				return
			}
			v.loads[s] = SectionLoad{State: Loaded}
		}(s, fetch)
	}
	wg.Wait()
}

// Ready reports whether no section fetch is pending.
func (v *View) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, l := range v.loads {
		if l.State == Pending {
			return false
		}
	}
	return true
}

func (v *View) LoadState(s Section) SectionLoad {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loads[s]
}

// Status returns the save state of s.
func (v *View) Status(s Section) Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status[s]
}

// Sweep returns every expired message status to idle and reports how many
// changed.
func (v *View) Sweep(now time.Time) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for s, st := range v.status {
		if st.Expired(now) {
			v.status[s] = Status{Phase: Idle}
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (v *View) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			v.Sweep(v.clock.Now())
		}
	}
}

// Local state accessors.  Edits only change the in-memory copy; nothing
// is sent until the matching Save call.

func (v *View) Profile() model.Profile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profile
}

func (v *View) SetProfile(p model.Profile) {
	v.mu.Lock()
	v.profile = p
	v.mu.Unlock()
}

func (v *View) NextOfKin() model.NextOfKin {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.kin
}

func (v *View) SetNextOfKin(n model.NextOfKin) {
	v.mu.Lock()
	v.kin = n
	v.mu.Unlock()
}

func (v *View) Medical() MedicalForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.medical
}

// EditMedical applies fn to the local medical form.
func (v *View) EditMedical(fn func(*MedicalForm)) {
	v.mu.Lock()
	fn(&v.medical)
	v.mu.Unlock()
}

func (v *View) Certificates() []model.Certificate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Certificate(nil), v.certs...)
}

// Draft is the certificate being filled in.
func (v *View) Draft() model.Certificate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

func (v *View) SetDraft(c model.Certificate) {
	v.mu.Lock()
	v.draft = c
	v.mu.Unlock()
}

func (v *View) Signature() model.ElectronicSignature {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.signature
}
