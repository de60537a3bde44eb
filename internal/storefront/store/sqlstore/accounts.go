package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type accountsRepo struct {
	q *Queries
}

type accountRow struct {
	ID            int64     `db:"id"`
	GUID          string    `db:"guid"`
	Email         string    `db:"email"`
	Name          string    `db:"name"`
	PasswordHash  string    `db:"password_hash"`
	Phone         *string   `db:"phone"`
	RoleID        int64     `db:"role_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	RoleName      string    `db:"role_name"`
	RoleCreatedAt time.Time `db:"role_created_at"`
	RoleUpdatedAt time.Time `db:"role_updated_at"`
}

const selectAccount = `
SELECT u.id, u.guid, u.email, u.name, u.password_hash, u.phone, u.role_id,
       u.created_at, u.updated_at,
       r.name AS role_name, r.created_at AS role_created_at, r.updated_at AS role_updated_at
FROM users u
JOIN roles r ON r.id = u.role_id`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	var row accountRow
	if err := r.q.get(ctx, &row, selectAccount+` WHERE u.id = ?`, id); err != nil {
		return domain.Account{}, err
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	var row accountRow
	if err := r.q.get(ctx, &row, selectAccount+` WHERE u.email = ?`, email); err != nil {
		return domain.Account{}, err
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	if a.GUID == "" {
		a.GUID = uuid.NewString()
	}

	id, err := r.q.insertID(ctx, `
INSERT INTO users (guid, email, name, password_hash, phone, role_id)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`,
		a.GUID, a.Email, a.Name, a.PasswordHash, a.Phone, a.RoleID)
	if err != nil {
		return domain.Account{}, err
	}
	return r.GetAccountByID(ctx, id)
}

func (r *accountsRepo) EnsureAccount(ctx context.Context, a domain.Account) (domain.Account, bool, error) {
	if a.GUID == "" {
		a.GUID = uuid.NewString()
	}

	res, err := r.q.exec(ctx, `
INSERT INTO users (guid, email, name, password_hash, phone, role_id)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (email) DO NOTHING`,
		a.GUID, a.Email, a.Name, a.PasswordHash, a.Phone, a.RoleID)
	if err != nil {
		return domain.Account{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Account{}, false, err
	}

	acc, err := r.GetAccountByEmail(ctx, a.Email)
	if err != nil {
		return domain.Account{}, false, err
	}
	return acc, n > 0, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	var rows []accountRow
	if err := r.q.selectAll(ctx, &rows, selectAccount+` ORDER BY u.id LIMIT ? OFFSET ?`, limit, offset); err != nil {
		return nil, err
	}

	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAccount(row))
	}
	return out, nil
}

func (r *accountsRepo) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.get(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, err
	}
	return n, nil
}

func mapAccount(row accountRow) domain.Account {
	return domain.Account{
		ID:           row.ID,
		GUID:         row.GUID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Phone:        row.Phone,
		RoleID:       row.RoleID,
		Role: domain.Role{
			ID:        row.RoleID,
			Name:      row.RoleName,
			CreatedAt: row.RoleCreatedAt,
			UpdatedAt: row.RoleUpdatedAt,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
