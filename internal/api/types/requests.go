package types

// LoginRequest is the credential payload for POST /api/auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// CreateEmployeeRequest is the field set for POST /api/employees.
// Salary accepts a JSON number or a formatted string ("$75,000.50").
type CreateEmployeeRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     any     `json:"salary"`
	HireDate   string  `json:"hire_date"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Status     *string `json:"status"`
}

// UpdateEmployeeRequest is a partial update for PUT /api/employees/{id};
// absent fields stay untouched.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Salary     any     `json:"salary"`
	HireDate   *string `json:"hire_date"`
	Status     *string `json:"status"`
}
