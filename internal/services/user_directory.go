package services

import (
	"context"
	"strconv"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/patrickmn/go-cache"
)

type userLookup interface {
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
}

// UserDirectory resolves user ids to public profiles, caching hits so list
// endpoints do not query Postgres once per row.
type UserDirectory struct {
	users userLookup
	cache *cache.Cache
}

func NewUserDirectory(users userLookup, ttl time.Duration) *UserDirectory {
	return &UserDirectory{
		users: users,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Resolve returns the profiles it could find; unknown ids are absent from the map.
func (d *UserDirectory) Resolve(ctx context.Context, ids []uint) (map[uint]models.UserCompact, error) {
	found := make(map[uint]models.UserCompact, len(ids))
	var missing []uint
	seen := make(map[uint]bool, len(ids))

	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		if cached, ok := d.cache.Get(cacheKey(id)); ok {
			found[id] = cached.(models.UserCompact)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return found, nil
	}

	users, err := d.users.GetUsersByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for i := range users {
		compact := users[i].ToCompact()
		d.cache.SetDefault(cacheKey(compact.ID), compact)
		found[compact.ID] = compact
	}
	return found, nil
}

// Lookup resolves a single user.
func (d *UserDirectory) Lookup(ctx context.Context, id uint) (models.UserCompact, bool, error) {
	found, err := d.Resolve(ctx, []uint{id})
	if err != nil {
		return models.UserCompact{}, false, err
	}
	u, ok := found[id]
	return u, ok, nil
}

// Forget drops a cached profile after it changed or was deleted.
func (d *UserDirectory) Forget(id uint) {
	d.cache.Delete(cacheKey(id))
}

func cacheKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
