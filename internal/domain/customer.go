package domain

// Customer is the backend's customer profile.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"nombre,omitempty"`
	LastName  string `json:"apellido,omitempty"`
	Phone     string `json:"telefono,omitempty"`
	Address   string `json:"direccion,omitempty"`
	Username  string `json:"usuario,omitempty"`
	Email     string `json:"email,omitempty"`
}

// RegisterInput is the payload for `/auth/register-cliente`.
type RegisterInput struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Phone     string `json:"telefono"`
	Address   string `json:"direccion"`
	Username  string `json:"usuario"`
	Password  string `json:"contrasena"`
}

// Credentials is the payload for `/auth/login`. The username doubles as the
// customer's email address in this backend.
type Credentials struct {
	Username string `json:"usuario"`
	Password string `json:"contrasena"`
}

// Role is the coarse access level decoded from the session token.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLEADO"
	RoleCustomer Role = "CLIENTE"
)
