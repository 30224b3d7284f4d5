package profileview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vessel-management/internal/clock"
	"github.com/iliyamo/vessel-management/internal/model"
)

// fakeAPI keeps one copy of each section the way the server would.
type fakeAPI struct {
	mu        sync.Mutex
	profile   model.Profile
	kin       model.NextOfKin
	medical   model.MedicalInfo
	certs     []model.Certificate
	signature model.ElectronicSignature

	failFetch   map[Section]error
	failSave    error
	failReload  error
	started     chan struct{}
	block       chan struct{}
	profileSent []model.Profile
	medicalSent []model.MedicalInfo
}

func newFakeAPI() *fakeAPI { return &fakeAPI{failFetch: map[Section]error{}} }

// inFlight signals started and then waits on block, when they are set.
func (f *fakeAPI) inFlight() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) fetchErr(s Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failFetch[s]
}

func (f *fakeAPI) Profile(context.Context) (model.Profile, error) {
	if err := f.fetchErr(SectionProfile); err != nil {
		return model.Profile{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, p model.Profile) (model.Profile, error) {
	f.inFlight()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave != nil {
		return model.Profile{}, f.failSave
	}
	f.profileSent = append(f.profileSent, p)
	f.profile = p
	return p, nil
}

func (f *fakeAPI) NextOfKin(context.Context) (model.NextOfKin, error) {
	if err := f.fetchErr(SectionNextOfKin); err != nil {
		return model.NextOfKin{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kin, nil
}

func (f *fakeAPI) UpdateNextOfKin(_ context.Context, n model.NextOfKin) (model.NextOfKin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kin = n
	return n, nil
}

func (f *fakeAPI) MedicalInfo(context.Context) (model.MedicalInfo, error) {
	if err := f.fetchErr(SectionMedical); err != nil {
		return model.MedicalInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.medical, nil
}

func (f *fakeAPI) UpdateMedicalInfo(_ context.Context, m model.MedicalInfo) (model.MedicalInfo, error) {
	f.inFlight()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.medicalSent = append(f.medicalSent, m)
	f.medical = m
	return m, nil
}

func (f *fakeAPI) Certificates(context.Context) ([]model.Certificate, error) {
	if err := f.fetchErr(SectionCertificates); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReload != nil {
		return nil, f.failReload
	}
	return append([]model.Certificate{}, f.certs...), nil
}

func (f *fakeAPI) CreateCertificate(_ context.Context, c model.Certificate) (model.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave != nil {
		return model.Certificate{}, f.failSave
	}
	c.ID = uint64(len(f.certs) + 1)
	f.certs = append(f.certs, c)
	return c, nil
}

func (f *fakeAPI) Signature(context.Context) (model.ElectronicSignature, error) {
	if err := f.fetchErr(SectionSignature); err != nil {
		return model.ElectronicSignature{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signature, nil
}

func (f *fakeAPI) UpdateSignature(_ context.Context, s model.ElectronicSignature) (model.ElectronicSignature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signature = s
	s.ID = 1
	return s, nil
}

type stubPad string

func (p stubPad) Encode() (string, error) { return string(p), nil }

var now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func TestLoadDegradesPerSection(t *testing.T) {
	api := newFakeAPI()
	api.profile = model.Profile{FirstName: "Ann"}
	api.certs = []model.Certificate{{ID: 1, CertificateType: model.CertificateGMDSS}}
	api.failFetch[SectionMedical] = errors.New("timeout")

	v := New(api, clock.Fixed(now), nil)
	assert.False(t, v.Ready())
	v.Load(context.Background())

	assert.True(t, v.Ready())
	assert.Equal(t, LoadFailed, v.LoadState(SectionMedical).State)
	assert.EqualError(t, v.LoadState(SectionMedical).Err, "timeout")
	for _, s := range []Section{SectionProfile, SectionNextOfKin, SectionCertificates, SectionSignature} {
		assert.Equal(t, Loaded, v.LoadState(s).State, s)
	}
	assert.Equal(t, "Ann", v.Profile().FirstName)
	assert.Len(t, v.Certificates(), 1)
}

func TestSaveSameProfileTwice(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)
	v.SetProfile(model.Profile{FirstName: "Ann", Surname: "Lee"})

	require.NoError(t, v.SaveProfile(context.Background()))
	first := api.profile
	require.NoError(t, v.SaveProfile(context.Background()))

	assert.Equal(t, first, api.profile)
	assert.Len(t, api.profileSent, 2)
	st := v.Status(SectionProfile)
	assert.Equal(t, Succeeded, st.Phase)
	assert.Equal(t, "Personal information updated successfully!", st.Message)
	assert.Equal(t, now.Add(MessageTTL), st.ExpiresAt)
}

func TestSaveFailureKeepsLocalEdits(t *testing.T) {
	api := newFakeAPI()
	api.failSave = errors.New("boom")
	v := New(api, clock.Fixed(now), nil)
	v.SetProfile(model.Profile{FirstName: "Draft"})

	require.Error(t, v.SaveProfile(context.Background()))
	st := v.Status(SectionProfile)
	assert.Equal(t, Failed, st.Phase)
	assert.Equal(t, "Failed to update personal information", st.Message)
	assert.Equal(t, "Draft", v.Profile().FirstName)
}

func TestConcurrentSaveOfSameSectionIsRejected(t *testing.T) {
	api := newFakeAPI()
	api.block = make(chan struct{})
	v := New(api, clock.Fixed(now), nil)

	done := make(chan error, 1)
	go func() { done <- v.SaveProfile(context.Background()) }()
	require.Eventually(t, func() bool { return v.Status(SectionProfile).Phase == Saving }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, v.SaveProfile(context.Background()), ErrSaveInProgress)
	assert.NoError(t, v.SaveSignature(context.Background(), stubPad("data:image/png;base64,AA==")), "other sections stay usable")

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, Succeeded, v.Status(SectionProfile).Phase)
}

func TestEditsDuringSaveAreKept(t *testing.T) {
	api := newFakeAPI()
	api.started = make(chan struct{})
	api.block = make(chan struct{})
	v := New(api, clock.Fixed(now), nil)
	v.SetProfile(model.Profile{FirstName: "Ann"})

	done := make(chan error, 1)
	go func() { done <- v.SaveProfile(context.Background()) }()
	<-api.started

	edited := v.Profile()
	edited.Surname = "Smith"
	v.SetProfile(edited)
	close(api.block)
	require.NoError(t, <-done)

	assert.Equal(t, model.Profile{FirstName: "Ann"}, api.profileSent[0])
	assert.Equal(t, model.Profile{FirstName: "Ann", Surname: "Smith"}, v.Profile())
	assert.Equal(t, Succeeded, v.Status(SectionProfile).Phase)
}

func TestMedicalEditsDuringSaveAreKept(t *testing.T) {
	api := newFakeAPI()
	api.started = make(chan struct{})
	api.block = make(chan struct{})
	v := New(api, clock.Fixed(now), nil)
	v.EditMedical(func(f *MedicalForm) { f.DoctorName = "Dr Ray" })

	done := make(chan error, 1)
	go func() { done <- v.SaveMedical(context.Background()) }()
	<-api.started

	v.EditMedical(func(f *MedicalForm) {
		f.SetFlag(Allergies, true)
		f.SetDetails(Allergies, "latex")
	})
	close(api.block)
	require.NoError(t, <-done)

	assert.False(t, api.medicalSent[0].Allergies)
	form := v.Medical()
	assert.Equal(t, "Dr Ray", form.DoctorName)
	assert.Equal(t, []string{Allergies}, form.VisibleDetails())
	assert.Equal(t, "latex", form.Details(Allergies))
}

func TestSweepExpiresMessages(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)
	require.NoError(t, v.SaveProfile(context.Background()))

	assert.Equal(t, 0, v.Sweep(now.Add(MessageTTL-time.Millisecond)))
	assert.Equal(t, Succeeded, v.Status(SectionProfile).Phase)
	assert.Equal(t, 1, v.Sweep(now.Add(MessageTTL)))
	assert.Equal(t, Status{Phase: Idle}, v.Status(SectionProfile))
}

func TestRunSweepsOnTicker(t *testing.T) {
	api := newFakeAPI()
	var mu sync.Mutex
	cur := now
	clk := clock.Func(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return cur
	})
	v := New(api, clk, nil)
	require.NoError(t, v.SaveProfile(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go v.Run(ctx, 5*time.Millisecond)

	mu.Lock()
	cur = now.Add(time.Hour)
	mu.Unlock()
	assert.Eventually(t, func() bool { return v.Status(SectionProfile).Phase == Idle }, time.Second, 5*time.Millisecond)
}

func TestMedicalToggleKeepsDetails(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)
	v.EditMedical(func(f *MedicalForm) {
		f.SetFlag(Allergies, true)
		f.SetDetails(Allergies, "penicillin")
	})
	form := v.Medical()
	assert.Equal(t, []string{Allergies}, form.VisibleDetails())

	v.EditMedical(func(f *MedicalForm) { f.SetFlag(Allergies, false) })
	form = v.Medical()
	assert.Empty(t, form.VisibleDetails())
	assert.Empty(t, form.Payload().AllergiesDetails)
	assert.Equal(t, "penicillin", form.Details(Allergies))

	require.NoError(t, v.SaveMedical(context.Background()))
	assert.Empty(t, api.medicalSent[0].AllergiesDetails)

	v.EditMedical(func(f *MedicalForm) { f.SetFlag(Allergies, true) })
	form = v.Medical()
	assert.Equal(t, "penicillin", form.Details(Allergies))
	assert.Equal(t, "penicillin", form.Payload().AllergiesDetails)
}

func TestNextOfKinValidatedBeforeSave(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)
	v.SetNextOfKin(model.NextOfKin{FullName: "Jo Lee", Relationship: model.RelationshipSibling})

	var fe *model.FieldError
	require.ErrorAs(t, v.SaveNextOfKin(context.Background()), &fe)
	assert.Equal(t, "telephone is required", v.Status(SectionNextOfKin).Message)
	assert.Equal(t, model.NextOfKin{}, api.kin)

	v.SetNextOfKin(model.NextOfKin{FullName: "Jo Lee", Relationship: model.RelationshipSibling, Telephone: "+44 1"})
	require.NoError(t, v.SaveNextOfKin(context.Background()))
	assert.Equal(t, "Next of kin information updated successfully!", v.Status(SectionNextOfKin).Message)
}

func gmdssDraft() model.Certificate {
	return model.Certificate{
		CertificateType: model.CertificateGMDSS,
		ValidFrom:       model.MustDate("2024-01-01"),
		ExpiryDate:      model.MustDate("2024-01-15"),
		IssuedBy:        "MCA",
	}
}

func TestAddCertificateReloadsList(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)
	v.Load(context.Background())
	before := len(v.Certificates())

	v.SetDraft(gmdssDraft())
	require.NoError(t, v.AddCertificate(context.Background()))

	certs := v.Certificates()
	require.Len(t, certs, before+1)
	assert.Equal(t, "MCA", certs[len(certs)-1].IssuedBy)
	assert.NotZero(t, certs[len(certs)-1].ID)
	assert.Equal(t, model.Certificate{}, v.Draft())
	assert.Equal(t, "Certificate added successfully!", v.Status(SectionCertificates).Message)
}

func TestAddCertificateFallsBackWhenReloadFails(t *testing.T) {
	api := newFakeAPI()
	api.failReload = errors.New("reload failed")
	v := New(api, clock.Fixed(now), nil)

	v.SetDraft(gmdssDraft())
	require.NoError(t, v.AddCertificate(context.Background()))
	require.Len(t, v.Certificates(), 1)
	assert.Equal(t, uint64(1), v.Certificates()[0].ID)
}

func TestAddCertificateRejectsIncompleteDraft(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)
	draft := gmdssDraft()
	draft.IssuedBy = ""
	v.SetDraft(draft)

	require.Error(t, v.AddCertificate(context.Background()))
	assert.Equal(t, "issued_by is required", v.Status(SectionCertificates).Message)
	assert.Equal(t, draft, v.Draft())
	assert.Empty(t, api.certs)
}

func TestSaveSignatureIsOptimistic(t *testing.T) {
	api := newFakeAPI()
	v := New(api, clock.Fixed(now), nil)

	require.NoError(t, v.SaveSignature(context.Background(), stubPad("data:image/png;base64,AA==")))
	sig := v.Signature()
	assert.Equal(t, "data:image/png;base64,AA==", sig.SignatureData)
	assert.Equal(t, model.SignatureTypeDrawn, sig.SignatureType)
	assert.Zero(t, sig.ID)
	assert.Equal(t, "Electronic signature saved successfully!", v.Status(SectionSignature).Message)
}
