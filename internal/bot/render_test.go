package bot

import (
	"CatalogBot/internal/model"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkBlocks(t *testing.T) {
	t.Run("blocks are packed together while they fit", func(t *testing.T) {
		got := chunkBlocks([]string{"aaa", "bbb", "ccc"}, 7)
		assert.Equal(t, []string{"aaabbb", "ccc"}, got)
	})

	t.Run("block is never split when it fits on its own", func(t *testing.T) {
		got := chunkBlocks([]string{"aaaa", "bbbbb"}, 5)
		assert.Equal(t, []string{"aaaa", "bbbbb"}, got)
	})

	t.Run("oversized block is split between lines only", func(t *testing.T) {
		block := "<b>Кот &amp; пёс</b>\n" + strings.Repeat("я", 8) + "\n<i>конец</i>\n"
		got := chunkBlocks([]string{block}, 22)
		require.Len(t, got, 2)
		for _, c := range got {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 22)
			assert.Equal(t, strings.Count(c, "<b>"), strings.Count(c, "</b>"))
			assert.Equal(t, strings.Count(c, "<i>"), strings.Count(c, "</i>"))
		}
		assert.Contains(t, got[0], "&amp;")
		assert.Equal(t, block, strings.Join(got, ""))
	})

	t.Run("single overlong line is kept whole", func(t *testing.T) {
		line := "<b>" + strings.Repeat("я", 10) + "</b>"
		got := chunkBlocks([]string{"шапка\n", line}, 8)
		assert.Equal(t, []string{"шапка\n", line}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, chunkBlocks(nil, 10))
	})

	t.Run("many users stay under the message limit", func(t *testing.T) {
		users := make([]model.User, 0, 200)
		for i := 0; i < 200; i++ {
			users = append(users, model.User{ID: int64(i + 1), Username: "reader", FirstName: "Имя", CreatedAt: time.Now()})
		}
		chunks := chunkBlocks(userBlocks(users), MaxMessageLength)
		require.Greater(t, len(chunks), 1)
		total := 0
		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), MaxMessageLength)
			total += strings.Count(c, "Username: @reader")
		}
		assert.Equal(t, 200, total, "every user must be listed exactly once")
	})
}

func TestUserBlocks_MissingUsername(t *testing.T) {
	blocks := userBlocks([]model.User{{ID: 5, FirstName: "Анна", Role: model.RoleAdmin}})
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[1], "Username: отсутствует")
	assert.Contains(t, blocks[1], "Роль: admin")
}

func TestCategoriesKeyboard_SkipsLongLabels(t *testing.T) {
	long := strings.Repeat("категория", 10)
	kb, skipped := categoriesKeyboard([]string{"Фантастика", long, "Поэзия"})

	require.Len(t, kb, 2)
	assert.Equal(t, "cat_Фантастика", kb[0][0].Data)
	assert.Equal(t, "Поэзия", kb[1][0].Text)
	assert.Equal(t, []string{long}, skipped)
}

func TestStatisticsText(t *testing.T) {
	avg := 4.5
	text := statisticsText(model.Statistics{
		TotalItems:   3,
		TotalUsers:   2,
		TotalRatings: 1,
		TopItems: []model.ItemScore{
			{ItemID: 1, Title: "<Дюна>", AvgScore: &avg, Ratings: 1},
			{ItemID: 2, Title: "Солярис"},
		},
		ByCategory: []model.CategoryCount{{Category: "Фантастика", Total: 2}, {Category: "", Total: 1}},
	})

	assert.Contains(t, text, "Записей: 3")
	assert.Contains(t, text, "1. &lt;Дюна&gt; - 4.5⭐ (оценок: 1)")
	assert.Contains(t, text, "2. Солярис - 0.0⭐ (оценок: 0)")
	assert.Contains(t, text, "Фантастика: 2")
	assert.Contains(t, text, "Без категории: 1")
}

func TestItemDetails(t *testing.T) {
	avg := 3.0
	it := model.Item{ID: 1, Title: "Дюна", Author: "Герберт", Category: "Фантастика", Description: "a & b"}
	recent := []model.RatingView{
		{Rating: model.Rating{UserID: 1, Score: 5, Comment: "первый"}, Username: "one"},
		{Rating: model.Rating{UserID: 2, Score: 4}},
		{Rating: model.Rating{UserID: 3, Score: 3, Comment: "второй"}, FirstName: "Иван"},
		{Rating: model.Rating{UserID: 4, Score: 2, Comment: "третий"}},
		{Rating: model.Rating{UserID: 5, Score: 1, Comment: "четвёртый"}},
	}

	text := itemDetails(it, &avg, 5, recent, "https://example.com/files/t")

	assert.Contains(t, text, "Рейтинг:</b> 3.0 (оценок: 5)")
	assert.Contains(t, text, "a &amp; b")
	assert.Contains(t, text, "5⭐ @one: первый")
	assert.Contains(t, text, "3⭐ Иван: второй")
	assert.Contains(t, text, "2⭐ ID 4: третий")
	assert.NotContains(t, text, "четвёртый")
	assert.Contains(t, text, `href="https://example.com/files/t"`)

	plain := itemDetails(it, nil, 0, nil, "")
	assert.Contains(t, plain, "Рейтинг:</b> 0.0 (оценок: 0)")
	assert.NotContains(t, plain, "Отзывы")
	assert.NotContains(t, plain, "href")
}

func TestDetailsKeyboard(t *testing.T) {
	it := model.Item{ID: 8}

	user := detailsKeyboard(it, false, false)
	assert.False(t, hasButton(user, "dl_8"))
	assert.True(t, hasButton(user, "rate_8"))
	assert.True(t, hasButton(user, "fav_8"))
	assert.False(t, hasButton(user, "edit_8"))

	admin := detailsKeyboard(it, true, true)
	assert.True(t, hasButton(admin, "dl_8"))
	assert.True(t, hasButton(admin, "edit_8"))
	assert.True(t, hasButton(admin, "del_8"))
}

func TestMenuFor(t *testing.T) {
	flat := func(m Menu) []string {
		var out []string
		for _, row := range m {
			out = append(out, row...)
		}
		return out
	}
	assert.NotContains(t, flat(menuFor(model.RoleUser)), LabelAddItem)
	assert.Contains(t, flat(menuFor(model.RoleAdmin)), LabelStatistics)
	assert.NotContains(t, flat(menuFor(model.RoleAdmin)), LabelUsers)
	super := flat(menuFor(model.RoleSuperadmin))
	assert.Contains(t, super, LabelUsers)
	assert.Contains(t, super, LabelAdmins)
	assert.Contains(t, super, LabelAddItem)
}
