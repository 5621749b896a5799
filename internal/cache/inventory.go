package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	popularFilmsKeyPrefix = "films:popular:%d"
	// popularFilmsKeyGlob matches every popular-films entry regardless of count.
	popularFilmsKeyGlob = "films:popular:*"
)

// PopularFilmsTTL bounds staleness of the popularity ranking between like
// mutations on different instances.
const PopularFilmsTTL = 30 * time.Second

// PopularFilmsKey returns the cache key for a ranked list of the given size.
func PopularFilmsKey(count int) string {
	return fmt.Sprintf(popularFilmsKeyPrefix, count)
}

// InvalidatePopularFilms drops every cached popularity ranking. Called after
// any like mutation.
func InvalidatePopularFilms(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, popularFilmsKeyGlob, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
