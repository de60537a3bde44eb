package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

type UserService struct {
	Store store.Store
}

// ListUsers returns one page of sanitized accounts and the total count.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]domain.PublicAccount, int64, error) {
	offset := (page - 1) * limit

	accounts, err := s.Store.Accounts().ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.Accounts().CountAccounts(ctx)
	if err != nil {
		return nil, 0, err
	}
	return domain.SanitizeAll(accounts), total, nil
}

// GetUserByID fetches a sanitized account by id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.PublicAccount, error) {
	acc, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicAccount{}, domain.Wrap(domain.KindNotFound, fmt.Sprintf("User with ID %d not found", id), err)
	}
	if err != nil {
		return domain.PublicAccount{}, err
	}
	return domain.Sanitize(acc), nil
}
