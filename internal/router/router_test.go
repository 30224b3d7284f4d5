package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/clock"
	"github.com/iliyamo/vessel-management/internal/config"
	"github.com/iliyamo/vessel-management/internal/handler"
	"github.com/iliyamo/vessel-management/internal/queue"
	"github.com/iliyamo/vessel-management/internal/repository"
	"github.com/iliyamo/vessel-management/internal/utils"
)

const testSecret = "router-test-secret"

var (
	today   = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	stamped = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
)

type chanPublisher chan queue.ComplianceEvent

func (p chanPublisher) PublishCompliance(_ context.Context, ev queue.ComplianceEvent) error {
	p <- ev
	return nil
}

type env struct {
	e      *echo.Echo
	mock   sqlmock.Sqlmock
	events chanPublisher
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newEnv(t *testing.T) *env {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := zap.NewNop()
	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	events := make(chanPublisher, 4)

	e := echo.New()
	Setup(e, log, nil)
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), log), testSecret, passthrough)
	RegisterProfile(e, &handler.ProfileHandler{
		Profiles:   repository.NewProfileRepo(db),
		Kin:        repository.NewNextOfKinRepo(db),
		Medical:    repository.NewMedicalRepo(db),
		Certs:      repository.NewCertificateRepo(db),
		Signatures: repository.NewSignatureRepo(db),
		Publisher:  events,
		Clock:      clock.Fixed(today),
		Log:        log,
	}, testSecret)
	RegisterFleet(e, &handler.FleetHandler{
		Vessels:     repository.NewVesselRepo(db),
		Maintenance: repository.NewMaintenanceRepo(db),
		Safety:      repository.NewSafetyRepo(db),
		Crew:        repository.NewCrewRepo(db),
		Log:         log,
	}, testSecret, passthrough, passthrough)
	return &env{e: e, mock: mock, events: events}
}

func token(t *testing.T, id uint64, role string) string {
	tok, err := utils.NewAccessToken(testSecret, id, role, 15)
	require.NoError(t, err)
	return tok.Token
}

func (v *env) call(t *testing.T, method, path, tok, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

var (
	profileCols = []string{"user_id", "email", "first_name", "surname", "date_of_birth", "building_house",
		"street_address", "city_town", "county_state", "postal_zip", "country", "telephone", "nationality", "updated_at"}
	medicalCols = []string{"id", "user_id", "doctor_name", "doctor_contact", "medical_certificate_expiry",
		"chronic_illness", "chronic_illness_details", "current_medications", "current_medications_details",
		"recent_surgery", "recent_surgery_details", "allergies", "allergies_details",
		"medical_fitness_declaration", "updated_at"}
	certCols   = []string{"id", "user_id", "certificate_type", "valid_from", "expiry_date", "issued_by", "file_path", "created_at"}
	vesselCols = []string{"id", "name", "imo_number", "vessel_type", "flag_state", "gross_tonnage", "length", "beam", "year_built", "is_active", "created_at"}
	crewCols   = []string{"id", "user_id", "vessel_id", "position", "start_date", "end_date", "is_active"}
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestHealth(t *testing.T) {
	v := newEnv(t)
	rec := v.call(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestProfileRoutesRequireBearer(t *testing.T) {
	v := newEnv(t)
	for _, p := range []string{"/profile", "/next-of-kin", "/medical-info", "/certificates", "/electronic-signature", "/dashboard"} {
		rec := v.call(t, http.MethodGet, p, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p)
	}
}

func TestSingleSlotsReturnEmptyObject(t *testing.T) {
	v := newEnv(t)
	tok := token(t, 3, "crew")
	for _, table := range []string{"user_profiles", "next_of_kin", "medical_info", "electronic_signatures"} {
		v.mock.ExpectQuery("FROM " + table).WithArgs(3).WillReturnError(sql.ErrNoRows)
	}
	for _, p := range []string{"/profile", "/next-of-kin", "/medical-info", "/electronic-signature"} {
		rec := v.call(t, http.MethodGet, p, tok, "")
		assert.Equal(t, http.StatusOK, rec.Code, p)
		assert.JSONEq(t, `{}`, rec.Body.String(), p)
	}
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestMedicalDetailSurvivesFalseFlag(t *testing.T) {
	v := newEnv(t)
	tok := token(t, 3, "crew")

	v.mock.ExpectExec(`INSERT INTO medical_info`).
		WithArgs(uint64(3), "", "", nil, false, "asthma", false, "", false, "", false, "", false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	stored := sqlmock.NewRows(medicalCols).
		AddRow(1, 3, "", "", nil, false, "asthma", false, "", false, "", false, "", false, stamped)
	v.mock.ExpectQuery(`FROM medical_info WHERE user_id = \?`).WithArgs(3).WillReturnRows(stored)
	v.mock.ExpectQuery(`FROM medical_info WHERE user_id = \?`).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(medicalCols).
			AddRow(1, 3, "", "", nil, false, "asthma", false, "", false, "", false, "", false, stamped))

	put := v.call(t, http.MethodPut, "/medical-info", tok, `{"chronic_illness":false,"chronic_illness_details":"asthma"}`)
	require.Equal(t, http.StatusOK, put.Code, put.Body.String())

	get := v.call(t, http.MethodGet, "/medical-info", tok, "")
	require.Equal(t, http.StatusOK, get.Code)
	body := decode(t, get)
	assert.Equal(t, false, body["chronic_illness"])
	assert.Equal(t, "asthma", body["chronic_illness_details"])
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func expectProfileSave(v *env, firstName string) {
	v.mock.ExpectExec(`INSERT INTO user_profiles`).
		WithArgs(uint64(3), firstName, "Lee", nil, "", "", "", "", "", "", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	v.mock.ExpectQuery(`FROM user_profiles p JOIN users u`).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow(3, "ann@example.com", firstName, "Lee", nil, "", "", "", "", "", "", "", "", stamped))
}

func TestProfileLastWriteWins(t *testing.T) {
	v := newEnv(t)
	tok := token(t, 3, "crew")

	expectProfileSave(v, "Ann")
	expectProfileSave(v, "Beth")
	v.mock.ExpectQuery(`FROM user_profiles p JOIN users u`).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow(3, "ann@example.com", "Beth", "Lee", nil, "", "", "", "", "", "", "", "", stamped))

	require.Equal(t, http.StatusOK, v.call(t, http.MethodPut, "/profile", tok, `{"first_name":"Ann","surname":"Lee"}`).Code)
	require.Equal(t, http.StatusOK, v.call(t, http.MethodPut, "/profile", tok, `{"first_name":"Beth","surname":"Lee"}`).Code)

	body := decode(t, v.call(t, http.MethodGet, "/profile", tok, ""))
	assert.Equal(t, "Beth", body["first_name"])
	assert.Equal(t, "ann@example.com", body["email"])
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestProfileSaveIsIdempotent(t *testing.T) {
	v := newEnv(t)
	tok := token(t, 3, "crew")
	payload := `{"first_name":"Ann","surname":"Lee"}`

	expectProfileSave(v, "Ann")
	expectProfileSave(v, "Ann")

	first := v.call(t, http.MethodPut, "/profile", tok, payload)
	second := v.call(t, http.MethodPut, "/profile", tok, payload)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestCertificateAppendThenList(t *testing.T) {
	v := newEnv(t)
	tok := token(t, 8, "crew")
	row := func(r *sqlmock.Rows) *sqlmock.Rows {
		return r.AddRow(11, 8, "GMDSS", day("2024-01-01"), day("2024-01-15"), "MCA", nil, stamped)
	}

	v.mock.ExpectQuery(`FROM certificates WHERE user_id = \?`).WithArgs(8).WillReturnRows(sqlmock.NewRows(certCols))
	v.mock.ExpectExec(`INSERT INTO certificates`).
		WithArgs(uint64(8), "GMDSS", "2024-01-01", "2024-01-15", "MCA", nil).
		WillReturnResult(sqlmock.NewResult(11, 1))
	v.mock.ExpectQuery(`FROM certificates WHERE id = \?`).WithArgs(11).WillReturnRows(row(sqlmock.NewRows(certCols)))
	v.mock.ExpectQuery(`FROM certificates WHERE user_id = \?`).WithArgs(8).WillReturnRows(row(sqlmock.NewRows(certCols)))

	var before []map[string]any
	require.NoError(t, json.Unmarshal(v.call(t, http.MethodGet, "/certificates", tok, "").Body.Bytes(), &before))

	post := v.call(t, http.MethodPost, "/certificates", tok,
		`{"certificate_type":"GMDSS","valid_from":"2024-01-01","expiry_date":"2024-01-15","issued_by":"MCA"}`)
	require.Equal(t, http.StatusCreated, post.Code, post.Body.String())
	created := decode(t, post)
	assert.Equal(t, float64(11), created["id"])
	assert.Equal(t, "expiring_soon", created["status"])

	var after []map[string]any
	require.NoError(t, json.Unmarshal(v.call(t, http.MethodGet, "/certificates", tok, "").Body.Bytes(), &after))
	require.Len(t, after, len(before)+1)
	last := after[len(after)-1]
	assert.Equal(t, "GMDSS", last["certificate_type"])
	assert.Equal(t, "2024-01-01", last["valid_from"])
	assert.Equal(t, "2024-01-15", last["expiry_date"])
	assert.Equal(t, "MCA", last["issued_by"])
	assert.Equal(t, "expiring_soon", last["status"])
	assert.NoError(t, v.mock.ExpectationsWereMet())

	select {
	case ev := <-v.events:
		assert.Equal(t, queue.KindCertificateAdded, ev.Kind)
		assert.Equal(t, uint64(11), ev.CertificateID)
		assert.Equal(t, "expiring_soon", ev.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("certificate event not published")
	}
}

func TestCertificateRequiresFields(t *testing.T) {
	v := newEnv(t)
	tok := token(t, 8, "crew")

	rec := v.call(t, http.MethodPost, "/certificates", tok,
		`{"certificate_type":"GMDSS","valid_from":"2024-01-01","expiry_date":"2024-01-15"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"issued_by is required"}`, rec.Body.String())

	rec = v.call(t, http.MethodPost, "/certificates", tok,
		`{"certificate_type":"Passport","valid_from":"2024-01-01","expiry_date":"2024-01-15","issued_by":"MCA"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = v.call(t, http.MethodPost, "/certificates", tok, `{"valid_from":"01/01/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestNextOfKinValidation(t *testing.T) {
	v := newEnv(t)
	rec := v.call(t, http.MethodPut, "/next-of-kin", token(t, 3, "crew"), `{"full_name":"Jo","relationship":"cousin","telephone":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"relationship is invalid"}`, rec.Body.String())
}

func TestSignatureRequiresData(t *testing.T) {
	v := newEnv(t)
	rec := v.call(t, http.MethodPut, "/electronic-signature", token(t, 3, "crew"), `{"signature_type":"drawn"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVesselWritesAreAdminOnly(t *testing.T) {
	v := newEnv(t)
	body := `{"name":"Aurora","vessel_type":"Tanker","flag_state":"Malta"}`

	rec := v.call(t, http.MethodPost, "/vessels", token(t, 2, "crew"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	v.mock.ExpectExec(`INSERT INTO vessels`).
		WithArgs("Aurora", nil, "Tanker", "Malta", nil, nil, nil, nil, true).
		WillReturnResult(sqlmock.NewResult(4, 1))
	v.mock.ExpectQuery(`FROM vessels WHERE id = \?`).WithArgs(4).
		WillReturnRows(sqlmock.NewRows(vesselCols).AddRow(4, "Aurora", nil, "Tanker", "Malta", nil, nil, nil, nil, true, stamped))

	rec = v.call(t, http.MethodPost, "/vessels", token(t, 1, "admin"), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["is_active"])
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestVesselNotFound(t *testing.T) {
	v := newEnv(t)
	v.mock.ExpectQuery(`FROM vessels WHERE id = \?`).WithArgs(77).WillReturnError(sql.ErrNoRows)

	rec := v.call(t, http.MethodGet, "/vessels/77", token(t, 2, "crew"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"vessel not found"}`, rec.Body.String())

	rec = v.call(t, http.MethodGet, "/vessels/abc", token(t, 2, "crew"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPersistenceFailureCarriesCause(t *testing.T) {
	v := newEnv(t)
	v.mock.ExpectQuery(`FROM vessels`).WillReturnError(errors.New("connection reset"))

	rec := v.call(t, http.MethodGet, "/vessels", token(t, 2, "crew"), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"list vessels failed: connection reset"}`, rec.Body.String())
}

func TestMaintenanceListFilter(t *testing.T) {
	v := newEnv(t)
	v.mock.ExpectQuery(`FROM maintenance_records WHERE vessel_id = \?`).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := v.call(t, http.MethodGet, "/maintenance?vessel_id=3", token(t, 2, "crew"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = v.call(t, http.MethodGet, "/maintenance?vessel_id=x", token(t, 2, "crew"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestCrewAssignmentUsesCaller(t *testing.T) {
	v := newEnv(t)
	v.mock.ExpectBegin()
	v.mock.ExpectExec(`UPDATE crew_assignments SET is_active = 0`).WithArgs(uint64(6)).WillReturnResult(sqlmock.NewResult(0, 1))
	v.mock.ExpectExec(`INSERT INTO crew_assignments`).
		WithArgs(uint64(6), uint64(2), "Bosun", "2024-03-01", nil).
		WillReturnResult(sqlmock.NewResult(9, 1))
	v.mock.ExpectCommit()

	rec := v.call(t, http.MethodPost, "/crew-assignments", token(t, 6, "crew"),
		`{"user_id":99,"vessel_id":2,"position":"Bosun","start_date":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(6), body["user_id"])
	assert.Equal(t, true, body["is_active"])
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestMyAssignment(t *testing.T) {
	v := newEnv(t)
	v.mock.ExpectQuery(`FROM crew_assignments WHERE user_id = \? AND is_active = 1`).WithArgs(6).
		WillReturnError(sql.ErrNoRows)
	rec := v.call(t, http.MethodGet, "/my-assignment", token(t, 6, "crew"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	v.mock.ExpectQuery(`FROM crew_assignments WHERE user_id = \? AND is_active = 1`).WithArgs(6).
		WillReturnRows(sqlmock.NewRows(crewCols).AddRow(9, 6, 2, "Bosun", nil, nil, true))
	v.mock.ExpectQuery(`FROM vessels WHERE id = \?`).WithArgs(2).WillReturnError(sql.ErrNoRows)
	rec = v.call(t, http.MethodGet, "/my-assignment", token(t, 6, "crew"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Nil(t, body["vessel"])
	assert.Equal(t, "Bosun", body["assignment"].(map[string]any)["position"])
}

func expectDashboardCore(v *env) {
	v.mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE`).WillReturnRows(sqlmock.NewRows([]string{"t", "a"}).AddRow(3, 2))
	v.mock.ExpectQuery(`FROM maintenance_records WHERE status = \?`).WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	v.mock.ExpectQuery(`FROM safety_records WHERE status = \?`).WithArgs("open").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	v.mock.ExpectQuery(`FROM vessels ORDER BY`).WithArgs(5).WillReturnRows(sqlmock.NewRows(vesselCols))
	v.mock.ExpectQuery(`FROM maintenance_records ORDER BY`).WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	v.mock.ExpectQuery(`FROM safety_records ORDER BY`).WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func TestDashboard(t *testing.T) {
	v := newEnv(t)

	expectDashboardCore(v)
	v.mock.ExpectQuery(`FROM crew_assignments WHERE user_id = \?`).WithArgs(6).
		WillReturnRows(sqlmock.NewRows(crewCols).AddRow(9, 6, 2, "Bosun", nil, nil, true))
	crew := decode(t, v.call(t, http.MethodGet, "/dashboard", token(t, 6, "crew"), ""))
	assert.Equal(t, float64(3), crew["total_vessels"])
	assert.Equal(t, float64(2), crew["active_vessels"])
	assert.Equal(t, float64(4), crew["pending_maintenance"])
	assert.Equal(t, float64(1), crew["open_safety_issues"])
	assert.Equal(t, []any{}, crew["recent_vessels"])
	require.NotNil(t, crew["user_assignment"])

	expectDashboardCore(v)
	captain := decode(t, v.call(t, http.MethodGet, "/dashboard", token(t, 7, "captain"), ""))
	assert.Nil(t, captain["user_assignment"])
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestRegisterAndLogin(t *testing.T) {
	v := newEnv(t)
	hash, err := utils.HashPassword("secret-pw", 4)
	require.NoError(t, err)
	userCols := []string{"id", "email", "password_hash", "first_name", "surname", "role", "is_active", "created_at"}

	v.mock.ExpectExec(`INSERT INTO users`).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	rec := v.call(t, http.MethodPost, "/auth/register", "", `{"email":"ann@example.com","password":"secret-pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	v.mock.ExpectQuery(`FROM users WHERE email=\?`).WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(5, "ann@example.com", hash, "Ann", nil, "crew", true, stamped))
	v.mock.ExpectExec(`INSERT INTO refresh_tokens`).WithArgs(uint64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	rec = v.call(t, http.MethodPost, "/auth/login", "", `{"email":"Ann@Example.com","password":"secret-pw"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "bearer", body["token_type"])
	assert.NotEmpty(t, body["refresh_token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	claims, err := utils.ParseAccessToken(testSecret, body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), claims.UserID)
	assert.Equal(t, "crew", claims.Role)

	v.mock.ExpectQuery(`FROM users WHERE email=\?`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(5, "ann@example.com", hash, "Ann", nil, "crew", true, stamped))
	rec = v.call(t, http.MethodPost, "/auth/login", "", `{"email":"ann@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, v.mock.ExpectationsWereMet())
}

func TestLogoutRevokesAllForBearer(t *testing.T) {
	v := newEnv(t)
	v.mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP\(\) WHERE user_id=\?`).
		WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 2))

	rec := v.call(t, http.MethodPost, "/auth/logout", token(t, 5, "crew"), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = v.call(t, http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, v.mock.ExpectationsWereMet())
}
