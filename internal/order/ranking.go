package order

import (
	"sort"

	"github.com/atelierops/backoffice/internal/model"
)

// priorityRank is the fixed queue ordering of tiers. Lower ranks first.
var priorityRank = map[model.PriorityTier]int{
	model.PriorityUrgent:  1,
	model.PriorityWedding: 2,
	model.PriorityRush:    3,
	model.PriorityHigh:    4,
	model.PriorityMedium:  5,
	model.PriorityLow:     6,
}

// Orders without a tier, or with a tier outside the map, rank as medium.
const defaultRank = 5

func rankOf(tier *model.PriorityTier) int {
	if tier == nil {
		return defaultRank
	}
	if r, ok := priorityRank[*tier]; ok {
		return r
	}
	return defaultRank
}

// Rank returns a new slice ordered by priority tier, then FIFO by creation
// time within a tier. The result is derived fresh on every call and never
// persisted; priority and status can change between refreshes.
func Rank(orders []model.Order) []model.Order {
	out := make([]model.Order, len(orders))
	copy(out, orders)

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rankOf(out[i].PriorityLevel), rankOf(out[j].PriorityLevel)
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
