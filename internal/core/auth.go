package core

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp/totp"

	"github.com/edvin/panel/internal/crypto"
	"github.com/edvin/panel/internal/model"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload issued at login. Role is consulted by the
// admin-gating middleware so it cannot be tampered with client-side.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthService authenticates panel users and manages their 2FA enrollment.
type AuthService struct {
	db         DB
	jwtSecret  []byte
	jwtIssuer  string
	totpIssuer string
}

func NewAuthService(db DB, jwtSecret, jwtIssuer, totpIssuer string) *AuthService {
	return &AuthService{
		db:         db,
		jwtSecret:  []byte(jwtSecret),
		jwtIssuer:  jwtIssuer,
		totpIssuer: totpIssuer,
	}
}

// Login authenticates a user by email and password, returning a JWT on
// success. Accounts with 2FA enabled must also supply a valid TOTP code.
// Suspended accounts are rejected. Credential failures are deliberately
// indistinguishable from unknown accounts.
func (s *AuthService) Login(ctx context.Context, email, password, totpCode string) (string, *model.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if user.Status == model.StatusSuspended {
		return "", nil, fmt.Errorf("account suspended")
	}

	if user.TwoFAEnabled {
		if user.TOTPSecret == nil || !totp.Validate(totpCode, *user.TOTPSecret) {
			return "", nil, fmt.Errorf("invalid two-factor code")
		}
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	_, err = s.db.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("record login time: %w", err)
	}

	return token, &user, nil
}

// IssueToken creates a signed JWT for the given user.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Email: user.Email,
		Role:  user.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(_ *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return &claims, nil
}

// SetupTwoFA generates a new TOTP secret for the user and stores it without
// enabling 2FA. The returned otpauth URL is rendered as a QR code by the
// client; enrollment completes via EnableTwoFA.
func (s *AuthService) SetupTwoFA(ctx context.Context, user *model.User) (secret, otpauthURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate TOTP secret: %w", err)
	}

	_, err = s.db.Exec(ctx,
		"UPDATE users SET totp_secret = $1, two_fa_enabled = false, updated_at = now() WHERE id = $2",
		key.Secret(), user.ID,
	)
	if err != nil {
		return "", "", fmt.Errorf("store TOTP secret: %w", err)
	}

	return key.Secret(), key.URL(), nil
}

// EnableTwoFA verifies the code against the pending secret and flips the flag.
func (s *AuthService) EnableTwoFA(ctx context.Context, userID, code string) error {
	var secret *string
	err := s.db.QueryRow(ctx, "SELECT totp_secret FROM users WHERE id = $1", userID).Scan(&secret)
	if err != nil {
		return fmt.Errorf("get TOTP secret: %w", err)
	}
	if secret == nil {
		return fmt.Errorf("two-factor setup has not been started")
	}
	if !totp.Validate(code, *secret) {
		return fmt.Errorf("invalid two-factor code")
	}

	_, err = s.db.Exec(ctx,
		"UPDATE users SET two_fa_enabled = true, updated_at = now() WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("enable two-factor: %w", err)
	}
	return nil
}

// DisableTwoFA turns off 2FA and discards the stored secret.
func (s *AuthService) DisableTwoFA(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE users SET two_fa_enabled = false, totp_secret = NULL, updated_at = now() WHERE id = $1",
		userID,
	)
	if err != nil {
		return fmt.Errorf("disable two-factor: %w", err)
	}
	return nil
}
