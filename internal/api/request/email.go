package request

// CreateEmailAccount holds the request body for creating a mailbox on a domain.
// LocalPart is the part before the @; the domain supplies the rest.
type CreateEmailAccount struct {
	LocalPart   string `json:"local_part" validate:"required,min=1,max=64"`
	DisplayName string `json:"display_name" validate:"omitempty,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	QuotaBytes  int64  `json:"quota_bytes" validate:"omitempty,min=0"`
}

// UpdateEmailAccount holds the request body for updating a mailbox.
type UpdateEmailAccount struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=128"`
	QuotaBytes  *int64  `json:"quota_bytes" validate:"omitempty,min=0"`
}

// CreateEmailForwarder holds the request body for adding a forwarder.
type CreateEmailForwarder struct {
	Destination string `json:"destination" validate:"required,email"`
	KeepCopy    bool   `json:"keep_copy"`
}

// UpdateEmailForwarder holds the request body for changing a forwarder.
type UpdateEmailForwarder struct {
	Destination *string `json:"destination" validate:"omitempty,email"`
	KeepCopy    *bool   `json:"keep_copy"`
}

// PutAutoresponder holds the request body for setting an account's auto-reply.
type PutAutoresponder struct {
	Subject   string  `json:"subject" validate:"required,min=1,max=255"`
	Body      string  `json:"body" validate:"required,min=1"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Enabled   bool    `json:"enabled"`
}
