package storage

import (
	"github.com/samber/lo"

	"github.com/mcoot/batepapo/internal/model"
)

// SelectHistory applies a history query to messages held in insertion order.
// Backends without a query language of their own share this so they agree
// on visibility, ordering and limit.
func SelectHistory(messages []model.Message, query model.HistoryQuery) []model.Message {
	visible := lo.Filter(messages, func(m model.Message, _ int) bool {
		return m.VisibleTo(query.Viewer)
	})

	// Latest insert first, so equal times keep newest-first order after the stable sort
	result := make([]model.Message, 0, len(visible))
	for i := len(visible) - 1; i >= 0; i-- {
		result = append(result, visible[i])
	}
	model.SortNewestFirst(result)

	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result
}
