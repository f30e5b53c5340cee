package user

import (
	"context"

	"backend/internal/providers/redis"

	"go.uber.org/zap"
)

const nameCacheKeyPrefix = "user:name:"

type Service interface {
	// DisplayNames resolves user ids to display names in one batch,
	// consulting the cache first. Unknown ids are simply absent from the
	// result.
	DisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}

type service struct {
	repo   Repository
	cache  *redis.RedisProvider
	logger *zap.Logger
}

func NewService(repo Repository, cache *redis.RedisProvider, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *service) DisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	var missing []string

	for _, id := range dedupe(ids) {
		if s.cache != nil {
			if name, ok := s.cache.Get(ctx, nameCacheKeyPrefix+id); ok {
				names[id] = name
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return names, nil
	}

	users, err := s.repo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		names[u.ID] = u.DisplayName
		if s.cache != nil {
			if err := s.cache.SetWithDefaultTTL(ctx, nameCacheKeyPrefix+u.ID, u.DisplayName, 0); err != nil {
				s.logger.Debug("Failed to cache user display name", zap.String("user_id", u.ID), zap.Error(err))
			}
		}
	}
	return names, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
