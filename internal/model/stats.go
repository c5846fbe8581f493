package model

// ItemScore: строка рейтинга записей. AvgScore == nil, если оценок нет.
type ItemScore struct {
	ItemID   int64
	Title    string
	AvgScore *float64
	Ratings  int64
}

// CategoryCount: количество записей в категории.
type CategoryCount struct {
	Category string
	Total    int64
}

// Statistics: сводка для администраторов.
type Statistics struct {
	TotalItems   int64
	TotalUsers   int64
	TotalRatings int64
	TopItems     []ItemScore
	ByCategory   []CategoryCount
}
