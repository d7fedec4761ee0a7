package model

import "time"

// Daemon is a managed system service (web server, mail, database, DNS)
// surfaced on the system tools page.
type Daemon struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Enabled       bool      `json:"enabled"`
	Status        string    `json:"status"`
	StatusMessage *string   `json:"status_message,omitempty"`
	RestartedAt   *time.Time `json:"restarted_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Daemon kinds.
const (
	DaemonWebServer = "webserver"
	DaemonMail      = "mail"
	DaemonDatabase  = "database"
	DaemonDNS       = "dns"
)
