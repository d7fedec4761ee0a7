package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/model"
)

// VirtualHostService manages web-server vhosts.
type VirtualHostService struct {
	db DB
}

func NewVirtualHostService(db DB) *VirtualHostService {
	return &VirtualHostService{db: db}
}

const virtualHostColumns = `id, domain_id, server_aliases, document_root, php_version,
	mod_security, auto_ssl, ssl_status, status, status_message, created_at, updated_at`

func scanVirtualHost(row interface{ Scan(dest ...any) error }) (model.VirtualHost, error) {
	var v model.VirtualHost
	err := row.Scan(&v.ID, &v.DomainID, &v.ServerAliases, &v.DocumentRoot, &v.PHPVersion,
		&v.ModSecurity, &v.AutoSSL, &v.SSLStatus, &v.Status, &v.StatusMessage,
		&v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// Create provisions a vhost for a domain. One vhost per domain.
func (s *VirtualHostService) Create(ctx context.Context, vhost *model.VirtualHost) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM virtual_hosts WHERE domain_id = $1)", vhost.DomainID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check vhost domain: %w", err)
	}
	if exists {
		return fmt.Errorf("domain already has a virtual host: %w", ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO virtual_hosts (id, domain_id, server_aliases, document_root, php_version,
		   mod_security, auto_ssl, ssl_status, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		vhost.ID, vhost.DomainID, vhost.ServerAliases, vhost.DocumentRoot, vhost.PHPVersion,
		vhost.ModSecurity, vhost.AutoSSL, vhost.SSLStatus, vhost.Status,
		vhost.CreatedAt, vhost.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert virtual host: %w", err)
	}
	return nil
}

func (s *VirtualHostService) GetByID(ctx context.Context, id string) (*model.VirtualHost, error) {
	v, err := scanVirtualHost(s.db.QueryRow(ctx,
		`SELECT `+virtualHostColumns+` FROM virtual_hosts WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get virtual host %s: %w", id, err)
	}
	return &v, nil
}

func (s *VirtualHostService) List(ctx context.Context, params request.ListParams) ([]model.VirtualHost, bool, error) {
	query := `SELECT ` + virtualHostColumns + ` FROM virtual_hosts WHERE true`
	args := []any{}
	argIdx := 1

	if params.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, params.Status)
		argIdx++
	}
	sortCol := "created_at"
	switch params.Sort {
	case "ssl_status":
		sortCol = "ssl_status"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	if params.Cursor != "" {
		query += keysetPredicate("virtual_hosts", sortCol, order, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, sortCol, order, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list virtual hosts: %w", err)
	}
	defer rows.Close()

	var vhosts []model.VirtualHost
	for rows.Next() {
		v, err := scanVirtualHost(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan virtual host: %w", err)
		}
		vhosts = append(vhosts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate virtual hosts: %w", err)
	}

	hasMore := len(vhosts) > params.Limit
	if hasMore {
		vhosts = vhosts[:params.Limit]
	}
	return vhosts, hasMore, nil
}

func (s *VirtualHostService) Update(ctx context.Context, id string, aliases []string, docRoot, phpVersion string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE virtual_hosts SET server_aliases = $2, document_root = $3, php_version = $4,
		   updated_at = now()
		 WHERE id = $1`,
		id, aliases, docRoot, phpVersion,
	)
	if err != nil {
		return fmt.Errorf("update virtual host %s: %w", id, err)
	}
	return nil
}

func (s *VirtualHostService) SetModSecurity(ctx context.Context, id string, enabled bool) error {
	_, err := s.db.Exec(ctx,
		"UPDATE virtual_hosts SET mod_security = $2, updated_at = now() WHERE id = $1", id, enabled)
	if err != nil {
		return fmt.Errorf("set mod_security on virtual host %s: %w", id, err)
	}
	return nil
}

// SetAutoSSL toggles automatic certificate issuance. Enabling moves the vhost
// to ssl_status pending until a certificate is recorded; disabling clears it.
func (s *VirtualHostService) SetAutoSSL(ctx context.Context, id string, enabled bool) error {
	sslStatus := model.SSLNone
	if enabled {
		sslStatus = model.SSLPending
	}
	_, err := s.db.Exec(ctx,
		"UPDATE virtual_hosts SET auto_ssl = $2, ssl_status = $3, updated_at = now() WHERE id = $1",
		id, enabled, sslStatus)
	if err != nil {
		return fmt.Errorf("set auto_ssl on virtual host %s: %w", id, err)
	}
	return nil
}

// SetSSLStatusByDomain records certificate state on the domain's vhost.
// A domain without a vhost is a no-op.
func (s *VirtualHostService) SetSSLStatusByDomain(ctx context.Context, domainID, sslStatus string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE virtual_hosts SET ssl_status = $2, updated_at = now() WHERE domain_id = $1", domainID, sslStatus)
	if err != nil {
		return fmt.Errorf("set ssl status for domain %s: %w", domainID, err)
	}
	return nil
}

func (s *VirtualHostService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM virtual_hosts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete virtual host %s: %w", id, err)
	}
	return nil
}
