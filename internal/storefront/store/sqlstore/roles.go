package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type rolesRepo struct {
	q *Queries
}

type roleRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const selectRole = `SELECT id, name, created_at, updated_at FROM roles`

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	var row roleRow
	if err := r.q.get(ctx, &row, selectRole+` WHERE id = ?`, id); err != nil {
		return domain.Role{}, err
	}
	return mapRole(row), nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	var row roleRow
	if err := r.q.get(ctx, &row, selectRole+` WHERE name = ?`, name); err != nil {
		return domain.Role{}, err
	}
	return mapRole(row), nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	var rows []roleRow
	if err := r.q.selectAll(ctx, &rows, selectRole+` ORDER BY id`); err != nil {
		return nil, err
	}

	out := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRole(row))
	}
	return out, nil
}

func (r *rolesRepo) EnsureRole(ctx context.Context, name string) (domain.Role, error) {
	if _, err := r.q.exec(ctx, `INSERT INTO roles (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name); err != nil {
		return domain.Role{}, err
	}
	return r.GetRoleByName(ctx, name)
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.q.get(ctx, &n, `SELECT COUNT(*) FROM roles`); err != nil {
		return false, err
	}
	return n == 0, nil
}

func mapRole(row roleRow) domain.Role {
	return domain.Role{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
