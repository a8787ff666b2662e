package service

import (
	"github.com/samber/lo"

	"content_mirror/internal/domain"
)

// Merge folds a fresh fetch into the stored items. The result follows fetch
// order and contains only fetched ids; items missing from the fetch are
// dropped. newItems holds fetched items whose id was not stored before.
func Merge(existing, fetched []domain.Item) (merged, newItems []domain.Item) {
	stored := lo.KeyBy(existing, func(item domain.Item) string {
		return item.ID
	})
	fetched = lo.UniqBy(fetched, func(item domain.Item) string {
		return item.ID
	})

	merged = make([]domain.Item, 0, len(fetched))
	for _, item := range fetched {
		old, ok := stored[item.ID]
		if !ok {
			item.CampaignCreated = false
			item.CampaignID = ""
			item.CampaignCreatedAt = nil
			newItems = append(newItems, item)
			merged = append(merged, item)
			continue
		}
		merged = append(merged, mergeItem(old, item))
	}

	return merged, newItems
}

// mergeItem takes provider fields from fetched and store-only fields from
// old. Values the provider left empty fall back to what was stored.
func mergeItem(old, fetched domain.Item) domain.Item {
	out := fetched

	out.CampaignCreated = old.CampaignCreated
	out.CampaignID = old.CampaignID
	out.CampaignCreatedAt = old.CampaignCreatedAt

	out.ViewCount = lo.CoalesceOrEmpty(fetched.ViewCount, old.ViewCount)
	out.LikeCount = lo.CoalesceOrEmpty(fetched.LikeCount, old.LikeCount)
	out.CommentCount = lo.CoalesceOrEmpty(fetched.CommentCount, old.CommentCount)
	out.DurationSeconds = lo.CoalesceOrEmpty(fetched.DurationSeconds, old.DurationSeconds)
	out.ImageURL = lo.CoalesceOrEmpty(fetched.ImageURL, old.ImageURL)

	return out
}
