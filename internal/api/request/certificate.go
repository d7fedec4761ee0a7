package request

// UploadCertificate holds the request body for uploading a custom certificate.
type UploadCertificate struct {
	CertPEM  string `json:"cert_pem" validate:"required"`
	KeyPEM   string `json:"key_pem" validate:"required"`
	ChainPEM string `json:"chain_pem"`
}
