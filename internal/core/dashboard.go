package core

import (
	"context"
	"fmt"
)

// DashboardStats holds aggregate counts for the overview page.
type DashboardStats struct {
	Users            int `json:"users"`
	UsersActive      int `json:"users_active"`
	UsersSuspended   int `json:"users_suspended"`
	Domains          int `json:"domains"`
	Subdomains       int `json:"subdomains"`
	DNSRecords       int `json:"dns_records"`
	EmailAccounts    int `json:"email_accounts"`
	EmailForwarders  int `json:"email_forwarders"`
	Databases        int `json:"databases"`
	DatabaseUsers    int `json:"database_users"`
	VirtualHosts     int `json:"virtual_hosts"`
	SSHKeys          int `json:"ssh_keys"`
	BlockedIPs       int `json:"blocked_ips"`
	CertificatesDue  int `json:"certificates_expiring"`
	SSLPendingVhosts int `json:"ssl_pending_vhosts"`

	DomainsByStatus []StatusCount      `json:"domains_by_status"`
	MailPerDomain   []DomainMailCount  `json:"mail_per_domain"`
	DiskPerDatabase []DatabaseDiskSize `json:"disk_per_database"`
}

// DomainMailCount holds mailbox count per domain.
type DomainMailCount struct {
	DomainID   string `json:"domain_id"`
	DomainName string `json:"domain_name"`
	Count      int    `json:"count"`
}

// DatabaseDiskSize holds reported size per database.
type DatabaseDiskSize struct {
	DatabaseID   string `json:"database_id"`
	DatabaseName string `json:"database_name"`
	SizeBytes    int64  `json:"size_bytes"`
}

// StatusCount holds a count grouped by status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardService queries aggregate stats.
type DashboardService struct {
	db DB
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats returns aggregate counts using a single query with CTEs for
// efficiency, plus a few grouped breakdowns.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	const countsQuery = `
		WITH user_count AS (
			SELECT count(*) AS c FROM users
		), user_active AS (
			SELECT count(*) AS c FROM users WHERE status = 'active'
		), user_suspended AS (
			SELECT count(*) AS c FROM users WHERE status = 'suspended'
		), domain_count AS (
			SELECT count(*) AS c FROM domains
		), subdomain_count AS (
			SELECT count(*) AS c FROM subdomains
		), dns_record_count AS (
			SELECT count(*) AS c FROM dns_records
		), email_account_count AS (
			SELECT count(*) AS c FROM email_accounts
		), email_forwarder_count AS (
			SELECT count(*) AS c FROM email_forwarders
		), database_count AS (
			SELECT count(*) AS c FROM databases
		), database_user_count AS (
			SELECT count(*) AS c FROM database_users
		), vhost_count AS (
			SELECT count(*) AS c FROM virtual_hosts
		), ssh_key_count AS (
			SELECT count(*) AS c FROM ssh_keys
		), blocked_ip_count AS (
			SELECT count(*) AS c FROM blocked_ips
		), cert_expiring AS (
			SELECT count(*) AS c FROM certificates
			WHERE is_active AND not_after < now() + interval '30 days'
		), ssl_pending AS (
			SELECT count(*) AS c FROM virtual_hosts WHERE ssl_status = 'pending'
		)
		SELECT
			(SELECT c FROM user_count),
			(SELECT c FROM user_active),
			(SELECT c FROM user_suspended),
			(SELECT c FROM domain_count),
			(SELECT c FROM subdomain_count),
			(SELECT c FROM dns_record_count),
			(SELECT c FROM email_account_count),
			(SELECT c FROM email_forwarder_count),
			(SELECT c FROM database_count),
			(SELECT c FROM database_user_count),
			(SELECT c FROM vhost_count),
			(SELECT c FROM ssh_key_count),
			(SELECT c FROM blocked_ip_count),
			(SELECT c FROM cert_expiring),
			(SELECT c FROM ssl_pending)`

	stats := &DashboardStats{}
	err := s.db.QueryRow(ctx, countsQuery).Scan(
		&stats.Users,
		&stats.UsersActive,
		&stats.UsersSuspended,
		&stats.Domains,
		&stats.Subdomains,
		&stats.DNSRecords,
		&stats.EmailAccounts,
		&stats.EmailForwarders,
		&stats.Databases,
		&stats.DatabaseUsers,
		&stats.VirtualHosts,
		&stats.SSHKeys,
		&stats.BlockedIPs,
		&stats.CertificatesDue,
		&stats.SSLPendingVhosts,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	// Domains by status
	dbsRows, err := s.db.Query(ctx,
		`SELECT status, count(*) FROM domains GROUP BY status ORDER BY count(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("dashboard domains by status: %w", err)
	}
	defer dbsRows.Close()

	for dbsRows.Next() {
		var sc StatusCount
		if err := dbsRows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.DomainsByStatus = append(stats.DomainsByStatus, sc)
	}
	if err := dbsRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	// Mailboxes per domain
	mpdRows, err := s.db.Query(ctx,
		`SELECT d.id, d.name, count(e.id)
		 FROM domains d LEFT JOIN email_accounts e ON e.domain_id = d.id
		 GROUP BY d.id, d.name
		 ORDER BY count(e.id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("dashboard mail per domain: %w", err)
	}
	defer mpdRows.Close()

	for mpdRows.Next() {
		var mc DomainMailCount
		if err := mpdRows.Scan(&mc.DomainID, &mc.DomainName, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan domain mail count: %w", err)
		}
		stats.MailPerDomain = append(stats.MailPerDomain, mc)
	}
	if err := mpdRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain mail counts: %w", err)
	}

	// Disk per database
	dpdRows, err := s.db.Query(ctx,
		`SELECT id, name, size_bytes FROM databases ORDER BY size_bytes DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("dashboard disk per database: %w", err)
	}
	defer dpdRows.Close()

	for dpdRows.Next() {
		var ds DatabaseDiskSize
		if err := dpdRows.Scan(&ds.DatabaseID, &ds.DatabaseName, &ds.SizeBytes); err != nil {
			return nil, fmt.Errorf("scan database disk size: %w", err)
		}
		stats.DiskPerDatabase = append(stats.DiskPerDatabase, ds)
	}
	if err := dpdRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate database disk sizes: %w", err)
	}

	return stats, nil
}
