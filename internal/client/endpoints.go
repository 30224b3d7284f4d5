package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/iliyamo/vessel-management/internal/model"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Role      string  `json:"role,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint64 `json:"user_id"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	ExpiresAt    time.Time  `json:"expires_at"`
	RefreshToken string     `json:"refresh_token"`
	User         model.User `json:"user"`
}

// Login exchanges credentials for tokens and starts sending the new
// access token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.write(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return AuthResponse{}, err
	}
	c.SetToken(out.AccessToken)
	return out, nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (RegisterResponse, error) {
	var out RegisterResponse
	err := c.write(ctx, http.MethodPost, "/auth/register", in, &out)
	return out, err
}

// Refresh rotates refreshToken and switches to the new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.write(ctx, http.MethodPost, "/auth/refresh", body, &out); err != nil {
		return AuthResponse{}, err
	}
	c.SetToken(out.AccessToken)
	return out, nil
}

// Logout revokes refreshToken, or every refresh token of the current
// bearer when refreshToken is empty.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var body any
	if refreshToken != "" {
		body = map[string]string{"refresh_token": refreshToken}
	}
	return c.write(ctx, http.MethodPost, "/auth/logout", body, nil)
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.get(ctx, "/auth/me", nil, &u)
	return u, err
}

// Profile sections.  An account that never saved a section gets the zero
// value.

func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	err := c.get(ctx, "/profile", nil, &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	var out model.Profile
	err := c.write(ctx, http.MethodPut, "/profile", p, &out)
	return out, err
}

func (c *Client) NextOfKin(ctx context.Context) (model.NextOfKin, error) {
	var n model.NextOfKin
	err := c.get(ctx, "/next-of-kin", nil, &n)
	return n, err
}

func (c *Client) UpdateNextOfKin(ctx context.Context, n model.NextOfKin) (model.NextOfKin, error) {
	var out model.NextOfKin
	err := c.write(ctx, http.MethodPut, "/next-of-kin", n, &out)
	return out, err
}

func (c *Client) MedicalInfo(ctx context.Context) (model.MedicalInfo, error) {
	var m model.MedicalInfo
	err := c.get(ctx, "/medical-info", nil, &m)
	return m, err
}

func (c *Client) UpdateMedicalInfo(ctx context.Context, m model.MedicalInfo) (model.MedicalInfo, error) {
	var out model.MedicalInfo
	err := c.write(ctx, http.MethodPut, "/medical-info", m, &out)
	return out, err
}

func (c *Client) Certificates(ctx context.Context) ([]model.Certificate, error) {
	var out []model.Certificate
	err := c.get(ctx, "/certificates", nil, &out)
	return out, err
}

func (c *Client) CreateCertificate(ctx context.Context, cert model.Certificate) (model.Certificate, error) {
	var out model.Certificate
	err := c.write(ctx, http.MethodPost, "/certificates", cert, &out)
	return out, err
}

func (c *Client) Signature(ctx context.Context) (model.ElectronicSignature, error) {
	var s model.ElectronicSignature
	err := c.get(ctx, "/electronic-signature", nil, &s)
	return s, err
}

func (c *Client) UpdateSignature(ctx context.Context, s model.ElectronicSignature) (model.ElectronicSignature, error) {
	var out model.ElectronicSignature
	err := c.write(ctx, http.MethodPut, "/electronic-signature", s, &out)
	return out, err
}

// Fleet.

func (c *Client) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var d model.Dashboard
	err := c.get(ctx, "/dashboard", nil, &d)
	return d, err
}

func (c *Client) Vessels(ctx context.Context) ([]model.Vessel, error) {
	var out []model.Vessel
	err := c.get(ctx, "/vessels", nil, &out)
	return out, err
}

func (c *Client) Vessel(ctx context.Context, id uint64) (model.Vessel, error) {
	var v model.Vessel
	err := c.get(ctx, fmt.Sprintf("/vessels/%d", id), nil, &v)
	return v, err
}

func (c *Client) CreateVessel(ctx context.Context, v model.Vessel) (model.Vessel, error) {
	var out model.Vessel
	err := c.write(ctx, http.MethodPost, "/vessels", v, &out)
	return out, err
}

func (c *Client) UpdateVessel(ctx context.Context, id uint64, v model.Vessel) (model.Vessel, error) {
	var out model.Vessel
	err := c.write(ctx, http.MethodPut, fmt.Sprintf("/vessels/%d", id), v, &out)
	return out, err
}

func (c *Client) DeleteVessel(ctx context.Context, id uint64) error {
	return c.write(ctx, http.MethodDelete, fmt.Sprintf("/vessels/%d", id), nil, nil)
}

// MaintenanceRecords lists tasks; vesselID 0 lists every vessel.
func (c *Client) MaintenanceRecords(ctx context.Context, vesselID uint64) ([]model.MaintenanceTask, error) {
	var out []model.MaintenanceTask
	err := c.get(ctx, "/maintenance", idQuery("vessel_id", vesselID), &out)
	return out, err
}

func (c *Client) CreateMaintenance(ctx context.Context, m model.MaintenanceTask) (model.MaintenanceTask, error) {
	var out model.MaintenanceTask
	err := c.write(ctx, http.MethodPost, "/maintenance", m, &out)
	return out, err
}

// SafetyRecords lists incidents; vesselID 0 lists every vessel.
func (c *Client) SafetyRecords(ctx context.Context, vesselID uint64) ([]model.SafetyRecord, error) {
	var out []model.SafetyRecord
	err := c.get(ctx, "/safety", idQuery("vessel_id", vesselID), &out)
	return out, err
}

func (c *Client) CreateSafety(ctx context.Context, s model.SafetyRecord) (model.SafetyRecord, error) {
	var out model.SafetyRecord
	err := c.write(ctx, http.MethodPost, "/safety", s, &out)
	return out, err
}

func (c *Client) CrewAssignments(ctx context.Context, userID, vesselID uint64) ([]model.CrewAssignment, error) {
	q := idQuery("user_id", userID)
	for k, v := range idQuery("vessel_id", vesselID) {
		q[k] = v
	}
	var out []model.CrewAssignment
	err := c.get(ctx, "/crew-assignments", q, &out)
	return out, err
}

// CreateCrewAssignment assigns the current user; the server ignores any
// user_id in a.
func (c *Client) CreateCrewAssignment(ctx context.Context, a model.CrewAssignment) (model.CrewAssignment, error) {
	var out model.CrewAssignment
	err := c.write(ctx, http.MethodPost, "/crew-assignments", a, &out)
	return out, err
}

// MyAssignment returns nil when the current user has no active
// assignment.
func (c *Client) MyAssignment(ctx context.Context) (*model.MyAssignment, error) {
	var out *model.MyAssignment
	err := c.get(ctx, "/my-assignment", nil, &out)
	return out, err
}

func idQuery(name string, id uint64) map[string]string {
	q := map[string]string{}
	if id != 0 {
		q[name] = strconv.FormatUint(id, 10)
	}
	return q
}
