package request

// CreateDatabase holds the request body for provisioning a database.
type CreateDatabase struct {
	Name   string `json:"name" validate:"required,slug"`
	Engine string `json:"engine" validate:"omitempty,oneof=mysql mariadb postgres"`
}

// CreateDatabaseUser holds the request body for creating a database user.
// DatabaseID is optional; a user can be created unattached and granted later.
type CreateDatabaseUser struct {
	Username   string   `json:"username" validate:"required,slug"`
	Password   string   `json:"password" validate:"required,min=8,max=128"`
	DatabaseID *string  `json:"database_id"`
	Privileges []string `json:"privileges" validate:"omitempty,dive,oneof=all select insert update delete create drop alter index"`
}

// UpdateDatabaseUser holds the request body for updating a database user.
type UpdateDatabaseUser struct {
	Password   *string  `json:"password" validate:"omitempty,min=8,max=128"`
	DatabaseID *string  `json:"database_id"`
	Privileges []string `json:"privileges" validate:"omitempty,dive,oneof=all select insert update delete create drop alter index"`
}
