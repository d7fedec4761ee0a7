package core

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// CertificateService manages TLS certificates for domains.
type CertificateService struct {
	db DB
}

func NewCertificateService(db DB) *CertificateService {
	return &CertificateService{db: db}
}

const certificateColumns = `id, domain_id, type, cert_pem, key_pem, chain_pem,
	subject, issuer, not_before, not_after, status, is_active, created_at, updated_at`

func scanCertificate(row interface{ Scan(dest ...any) error }) (model.Certificate, error) {
	var c model.Certificate
	err := row.Scan(&c.ID, &c.DomainID, &c.Type, &c.CertPEM, &c.KeyPEM, &c.ChainPEM,
		&c.Subject, &c.Issuer, &c.NotBefore, &c.NotAfter, &c.Status, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ParseCertificatePEM decodes the leaf certificate and verifies the private
// key matches it. The parsed leaf supplies subject, issuer and validity.
func ParseCertificatePEM(certPEM, keyPEM string) (*x509.Certificate, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("decode certificate: no CERTIFICATE block found")
	}
	leaf, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}
	if _, err := tls.X509KeyPair([]byte(certPEM), []byte(keyPEM)); err != nil {
		return nil, fmt.Errorf("match private key: %w", err)
	}
	return leaf, nil
}

// Create stores a certificate and makes it the active one for its domain,
// deactivating whatever was active before.
func (s *CertificateService) Create(ctx context.Context, cert *model.Certificate) error {
	_, err := s.db.Exec(ctx,
		"UPDATE certificates SET is_active = false, updated_at = now() WHERE domain_id = $1 AND is_active",
		cert.DomainID)
	if err != nil {
		return fmt.Errorf("deactivate previous certificates: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO certificates (id, domain_id, type, cert_pem, key_pem, chain_pem,
		   subject, issuer, not_before, not_after, status, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		cert.ID, cert.DomainID, cert.Type, cert.CertPEM, cert.KeyPEM, cert.ChainPEM,
		cert.Subject, cert.Issuer, cert.NotBefore, cert.NotAfter, cert.Status, cert.IsActive,
		cert.CreatedAt, cert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

func (s *CertificateService) GetByID(ctx context.Context, id string) (*model.Certificate, error) {
	c, err := scanCertificate(s.db.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get certificate %s: %w", id, err)
	}
	return &c, nil
}

func (s *CertificateService) ListByDomain(ctx context.Context, domainID string, limit int, cursor string) ([]model.Certificate, bool, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE domain_id = $1`
	args := []any{domainID}
	argIdx := 2

	if cursor != "" {
		query += fmt.Sprintf(` AND id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var certs []model.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan certificate: %w", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate certificates: %w", err)
	}

	hasMore := len(certs) > limit
	if hasMore {
		certs = certs[:limit]
	}
	return certs, hasMore, nil
}

func (s *CertificateService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM certificates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete certificate %s: %w", id, err)
	}
	return nil
}
