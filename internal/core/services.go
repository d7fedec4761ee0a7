package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the minimal query surface the services need. *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Services struct {
	Auth           *AuthService
	User           *UserService
	Domain         *DomainService
	Subdomain      *SubdomainService
	DNSRecord      *DNSRecordService
	EmailAccount   *EmailAccountService
	EmailForwarder *EmailForwarderService
	Autoresponder  *AutoresponderService
	Database       *DatabaseService
	DatabaseUser   *DatabaseUserService
	VirtualHost    *VirtualHostService
	SSHKey         *SSHKeyService
	BlockedIP      *BlockedIPService
	Certificate    *CertificateService
	Daemon         *DaemonService
	Dashboard      *DashboardService
}

func NewServices(db DB, jwtSecret, jwtIssuer, totpIssuer string) *Services {
	return &Services{
		Auth:           NewAuthService(db, jwtSecret, jwtIssuer, totpIssuer),
		User:           NewUserService(db),
		Domain:         NewDomainService(db),
		Subdomain:      NewSubdomainService(db),
		DNSRecord:      NewDNSRecordService(db),
		EmailAccount:   NewEmailAccountService(db),
		EmailForwarder: NewEmailForwarderService(db),
		Autoresponder:  NewAutoresponderService(db),
		Database:       NewDatabaseService(db),
		DatabaseUser:   NewDatabaseUserService(db),
		VirtualHost:    NewVirtualHostService(db),
		SSHKey:         NewSSHKeyService(db),
		BlockedIP:      NewBlockedIPService(db),
		Certificate:    NewCertificateService(db),
		Daemon:         NewDaemonService(db),
		Dashboard:      NewDashboardService(db),
	}
}
