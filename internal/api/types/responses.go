package types

import (
	"time"

	"github.com/staffdesk/api/internal/models"
	"github.com/staffdesk/api/internal/services"
)

// ErrorResponse is the uniform error envelope. Errors carries the
// per-field messages of a validation failure and is omitted otherwise.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// MessageResponse wraps endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Message      string        `json:"message"`
	Admin        *models.Admin `json:"admin"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

// RefreshResponse carries the re-issued access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// ProfileResponse wraps the authenticated admin account.
type ProfileResponse struct {
	Admin *models.Admin `json:"admin"`
}

// EmployeeResponse is the wire form of an employee record. Salary is a
// plain JSON number and HireDate a bare calendar date. The deletion
// fields only appear on listings that opted into deleted rows.
type EmployeeResponse struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              *string    `json:"phone"`
	Address            *string    `json:"address"`
	Department         string     `json:"department"`
	Position           string     `json:"position"`
	Salary             float64    `json:"salary"`
	HireDate           string     `json:"hire_date"`
	Status             string     `json:"status"`
	ProfilePicturePath *string    `json:"profile_picture_path"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	IsDeleted          *bool      `json:"is_deleted,omitempty"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}

// NewEmployeeResponse converts a model row. With showDeletion the
// soft-delete state is exposed alongside the regular fields.
func NewEmployeeResponse(e *models.Employee, showDeletion bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Email:              e.Email,
		Phone:              e.Phone,
		Address:            e.Address,
		Department:         e.Department,
		Position:           e.Position,
		Salary:             e.Salary.InexactFloat64(),
		HireDate:           e.HireDate.Format("2006-01-02"),
		Status:             e.Status,
		ProfilePicturePath: e.ProfilePicturePath,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if showDeletion {
		deleted := e.IsDeleted
		resp.IsDeleted = &deleted
		resp.DeletedAt = e.DeletedAt
	}
	return resp
}

// EmployeeEnvelope wraps a single record.
type EmployeeEnvelope struct {
	Employee EmployeeResponse `json:"employee"`
}

// EmployeeCreatedResponse confirms creation with the stored record.
type EmployeeCreatedResponse struct {
	Message  string           `json:"message"`
	Employee EmployeeResponse `json:"employee"`
}

// EmployeeListResponse is a page of employees plus paging metadata.
type EmployeeListResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Pagination services.PageMeta  `json:"pagination"`
}

// NewEmployeeListResponse converts a page of rows.
func NewEmployeeListResponse(items []models.Employee, meta services.PageMeta, showDeletion bool) EmployeeListResponse {
	out := make([]EmployeeResponse, 0, len(items))
	for i := range items {
		out = append(out, NewEmployeeResponse(&items[i], showDeletion))
	}
	return EmployeeListResponse{Employees: out, Pagination: meta}
}

// UploadResponse confirms a stored profile picture.
type UploadResponse struct {
	Message            string `json:"message"`
	ProfilePicturePath string `json:"profile_picture_path"`
}
