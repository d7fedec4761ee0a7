package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/crypto"
	"github.com/edvin/panel/internal/model"
)

// UserService manages panel accounts.
type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, email, password_hash, display_name, role, status, two_fa_enabled, totp_secret, last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
		&u.Status, &u.TwoFAEnabled, &u.TOTPSecret, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *UserService) Create(ctx context.Context, user *model.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, role, status, two_fa_enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Role,
		user.Status, user.TwoFAEnabled, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context, params request.ListParams) ([]model.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE true`
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		query += fmt.Sprintf(` AND (email ILIKE $%d OR display_name ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, params.Status)
		argIdx++
	}
	sortCol := "created_at"
	switch params.Sort {
	case "email":
		sortCol = "email"
	case "role":
		sortCol = "role"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	if params.Cursor != "" {
		query += keysetPredicate("users", sortCol, order, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, sortCol, order, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate users: %w", err)
	}

	hasMore := len(users) > params.Limit
	if hasMore {
		users = users[:params.Limit]
	}
	return users, hasMore, nil
}

func (s *UserService) Update(ctx context.Context, user *model.User) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET display_name = $1, role = $2, status = $3, updated_at = now()
		 WHERE id = $4`,
		user.DisplayName, user.Role, user.Status, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}

// SetPassword replaces the user's password hash after hashing the new value.
func (s *UserService) SetPassword(ctx context.Context, id, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(ctx,
		"UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2", hash, id)
	if err != nil {
		return fmt.Errorf("set password for user %s: %w", id, err)
	}
	return nil
}

func (s *UserService) SetStatus(ctx context.Context, id, status string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE users SET status = $1, updated_at = now() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("set user %s status: %w", id, err)
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
