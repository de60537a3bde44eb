package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/storefront/internal/storefront/cache"
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// DefaultRoleCacheTTL bounds how long a role lookup is served from cache.
const DefaultRoleCacheTTL = 10 * time.Minute

// RolesService resolves roles through a read-through cache. Roles never
// change after seeding, so entries are only dropped by TTL.
type RolesService struct {
	Store   store.Store
	Cache   cache.Client
	TTL     time.Duration
	Metrics *metrics.Metrics

	group singleflight.Group
}

// GetRoleByID fetches a role by its ID.
func (s *RolesService) GetRoleByID(ctx context.Context, roleID int64) (domain.Role, error) {
	return s.lookup(ctx, roleIDKey(roleID), func(ctx context.Context) (domain.Role, error) {
		return s.Store.Roles().GetRoleByID(ctx, roleID)
	})
}

// GetRoleByName fetches a role by its name.
func (s *RolesService) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return s.lookup(ctx, roleNameKey(name), func(ctx context.Context) (domain.Role, error) {
		return s.Store.Roles().GetRoleByName(ctx, name)
	})
}

// RoleName resolves a role id to its name for the access guard.
func (s *RolesService) RoleName(ctx context.Context, roleID int64) (string, error) {
	role, err := s.GetRoleByID(ctx, roleID)
	if errors.Is(err, store.ErrNotFound) {
		return "", httpx.ErrUnknownRole
	}
	if err != nil {
		return "", err
	}
	return role.Name, nil
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

func (s *RolesService) lookup(
	ctx context.Context,
	key string,
	load func(context.Context) (domain.Role, error),
) (domain.Role, error) {
	l := slogx.FromContext(ctx)

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key)
		if err == nil {
			var role domain.Role
			if err := json.Unmarshal([]byte(raw), &role); err == nil {
				s.Metrics.CacheLookup(true)
				return role, nil
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			l.Warn("role cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		s.Metrics.CacheLookup(false)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		role, err := load(ctx)
		if err != nil {
			return domain.Role{}, err
		}

		if s.Cache != nil {
			raw, _ := json.Marshal(role)
			if err := s.Cache.Set(ctx, key, string(raw), s.ttl()); err != nil {
				l.Warn("role cache write failed", slog.String("key", key), slog.Any("error", err))
			}
		}
		return role, nil
	})
	if err != nil {
		return domain.Role{}, err
	}
	return v.(domain.Role), nil
}

func (s *RolesService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultRoleCacheTTL
}

// Warm loads every role into the cache under both its id and name keys.
func (s *RolesService) Warm(ctx context.Context) (int, error) {
	if s.Cache == nil {
		return 0, nil
	}

	roles, err := s.Store.Roles().ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, role := range roles {
		raw, _ := json.Marshal(role)
		for _, key := range []string{
			roleIDKey(role.ID),
			roleNameKey(role.Name),
		} {
			if err := s.Cache.Set(ctx, key, string(raw), s.ttl()); err != nil {
				return 0, err
			}
		}
	}
	return len(roles), nil
}

func roleIDKey(id int64) string { return "role:id:" + strconv.FormatInt(id, 10) }
func roleNameKey(name string) string { return "role:name:" + name }
