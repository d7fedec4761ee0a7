package request

// CreateUser holds the request body for creating a panel user.
type CreateUser struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=255"`
	Role        string  `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUser holds the request body for updating a panel user.
type UpdateUser struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=255"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin user"`
}
