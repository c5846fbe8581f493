package repo

import (
	"CatalogBot/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_TopItemsAndCategories(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	ratings := NewRatingRepository(db)
	s := NewStatsRepository(db)
	ctx := context.Background()

	a := mkItem(t, items, "A", "x", "sf")
	b := mkItem(t, items, "B", "x", "sf")
	c := mkItem(t, items, "C", "x", "")
	mkItem(t, items, "Unrated", "x", "drama")

	now := time.Now()
	rate := func(item, user int64, score int) {
		require.NoError(t, ratings.Upsert(ctx, &model.Rating{ItemID: item, UserID: user, Score: score, RatedAt: now}))
	}
	rate(a, 1, 4)
	rate(b, 1, 4)
	rate(b, 2, 4)
	rate(c, 1, 5)

	top, err := s.TopItems(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 4)
	// C: 5.0/1, B: 4.0/2, A: 4.0/1, Unrated: NULL/0
	assert.Equal(t, "C", top[0].Title)
	assert.Equal(t, "B", top[1].Title)
	assert.Equal(t, int64(2), top[1].Ratings)
	assert.Equal(t, "A", top[2].Title)
	assert.Equal(t, "Unrated", top[3].Title)
	assert.Nil(t, top[3].AvgScore)

	top, err = s.TopItems(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	cats, err := s.ByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, model.CategoryCount{Category: "sf", Total: 2}, cats[0])
}
