package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LikeMutations counts like-edge writes by operation (add, remove).
	LikeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmgraph_like_mutations_total",
		Help: "Total number of like-edge mutations by operation",
	}, []string{"operation"})

	// FriendshipMutations counts friendship-edge writes by operation (add, remove).
	FriendshipMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmgraph_friendship_mutations_total",
		Help: "Total number of friendship-edge mutations by operation",
	}, []string{"operation"})

	// PopularCacheResults counts popularity-ranking cache lookups by result (hit, miss).
	PopularCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmgraph_popular_cache_results_total",
		Help: "Popular films cache lookups by result",
	}, []string{"result"})
)
