package bot

import (
	"CatalogBot/internal/model"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength: предел длины одного сообщения у платформы.
const MaxMessageLength = 4096

// SearchResultLimit: сколько карточек показывать на один запрос.
const SearchResultLimit = 10

const maxRecentComments = 3

var esc = html.EscapeString

// menuFor возвращает главное меню для роли.
func menuFor(role model.Role) Menu {
	switch role {
	case model.RoleSuperadmin:
		return Menu{
			{LabelSearch, LabelCategories},
			{LabelFavorites, LabelAddItem},
			{LabelStatistics, LabelUsers},
			{LabelAdmins},
		}
	case model.RoleAdmin:
		return Menu{
			{LabelSearch, LabelCategories},
			{LabelFavorites, LabelAddItem},
			{LabelStatistics},
		}
	default:
		return Menu{
			{LabelSearch, LabelCategories},
			{LabelFavorites},
		}
	}
}

// cardText: краткая подпись записи в списках.
func cardText(it model.Item, withCategory bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 <b>%s</b>\n👤 <b>Автор:</b> %s", esc(it.Title), esc(it.Author))
	if withCategory {
		fmt.Fprintf(&b, "\n🔖 <b>Категория:</b> %s", esc(it.Category))
	}
	return b.String()
}

func cardKeyboard(it model.Item, favorite bool) Keyboard {
	kb := Keyboard{{{Text: btnDetails, Data: Command{Action: ActItem, ID: it.ID}.Encode()}}}
	if favorite {
		kb = append(kb, []Button{{Text: btnUnfavorite, Data: Command{Action: ActUnfavorite, ID: it.ID}.Encode()}})
	}
	return kb
}

// itemDetails собирает полную карточку записи.
func itemDetails(it model.Item, avg *float64, count int64, recent []model.RatingView, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 <b>%s</b>\n\n", esc(it.Title))
	fmt.Fprintf(&b, "👤 <b>Автор:</b> %s\n", esc(it.Author))
	fmt.Fprintf(&b, "🔖 <b>Категория:</b> %s\n", esc(it.Category))
	fmt.Fprintf(&b, "⭐ <b>Рейтинг:</b> %s (оценок: %d)\n\n", formatScore(avg), count)
	fmt.Fprintf(&b, "📝 <b>Описание:</b>\n%s", esc(it.Description))

	shown := 0
	for _, r := range recent {
		if r.Comment == "" {
			continue
		}
		if shown == 0 {
			b.WriteString("\n\n💬 <b>Отзывы:</b>")
		}
		fmt.Fprintf(&b, "\n%d⭐ %s: %s", r.Score, esc(raterName(r)), esc(r.Comment))
		shown++
		if shown == maxRecentComments {
			break
		}
	}
	if link != "" {
		fmt.Fprintf(&b, "\n\n🔗 <a href=\"%s\">Скачать по ссылке</a>", esc(link))
	}
	return b.String()
}

func raterName(r model.RatingView) string {
	u := model.User{ID: r.UserID, Username: r.Username, FirstName: r.FirstName, LastName: r.LastName}
	if name := u.DisplayName(); name != "" {
		return name
	}
	return fmt.Sprintf("ID %d", r.UserID)
}

func detailsKeyboard(it model.Item, hasDocument, canManage bool) Keyboard {
	var kb Keyboard
	if hasDocument {
		kb = append(kb, []Button{{Text: btnDownload, Data: Command{Action: ActDownload, ID: it.ID}.Encode()}})
	}
	kb = append(kb,
		[]Button{{Text: btnRate, Data: Command{Action: ActRate, ID: it.ID}.Encode()}},
		[]Button{{Text: btnFavorite, Data: Command{Action: ActFavorite, ID: it.ID}.Encode()}},
	)
	if canManage {
		kb = append(kb,
			[]Button{{Text: btnEdit, Data: Command{Action: ActEdit, ID: it.ID}.Encode()}},
			[]Button{{Text: btnDelete, Data: Command{Action: ActDelete, ID: it.ID}.Encode()}},
		)
	}
	return kb
}

func ratingKeyboard(itemID int64) Keyboard {
	row := make([]Button, 0, 5)
	for i := 1; i <= 5; i++ {
		row = append(row, Button{
			Text: fmt.Sprintf("%d⭐", i),
			Data: Command{Action: ActScore, ID: itemID, Score: i}.Encode(),
		})
	}
	return Keyboard{row}
}

func editKeyboard(itemID int64) Keyboard {
	field := func(text, f string) []Button {
		return []Button{{Text: text, Data: Command{Action: ActEditField, ID: itemID, Field: f}.Encode()}}
	}
	return Keyboard{
		field(btnEditTitle, FieldTitle),
		field(btnEditAuthor, FieldAuthor),
		field(btnEditDesc, FieldDescription),
		field(btnEditCategory, FieldCategory),
		field(btnEditImage, FieldImage),
		field(btnEditDocument, FieldDocument),
		{{Text: btnBack, Data: Command{Action: ActItem, ID: itemID}.Encode()}},
	}
}

func afterEditKeyboard(itemID int64) Keyboard {
	return Keyboard{
		{{Text: btnContinueEdit, Data: Command{Action: ActEdit, ID: itemID}.Encode()}},
		{{Text: btnBackToDetails, Data: Command{Action: ActItem, ID: itemID}.Encode()}},
	}
}

func deleteKeyboard(itemID int64) Keyboard {
	return Keyboard{
		{{Text: btnYes, Data: Command{Action: ActDeleteOK, ID: itemID}.Encode()}},
		{{Text: btnNo, Data: Command{Action: ActDeleteNo, ID: itemID}.Encode()}},
	}
}

func adminsMenuKeyboard() Keyboard {
	return Keyboard{
		{{Text: btnAddAdmin, Data: Command{Action: ActPromote}.Encode()}},
		{{Text: btnRemoveAdmin, Data: Command{Action: ActAdmins}.Encode()}},
	}
}

func demoteKeyboard(admins []model.User) Keyboard {
	kb := make(Keyboard, 0, len(admins))
	for _, u := range admins {
		kb = append(kb, []Button{{
			Text: fmt.Sprintf("%s (ID: %d)", u.DisplayName(), u.ID),
			Data: Command{Action: ActDemote, ID: u.ID}.Encode(),
		}})
	}
	return kb
}

// categoriesKeyboard пропускает метки, не помещающиеся в callback-данные.
func categoriesKeyboard(labels []string) (Keyboard, []string) {
	var (
		kb      Keyboard
		skipped []string
	)
	for _, l := range labels {
		data := Command{Action: ActCategory, Label: l}.Encode()
		if len(data) > MaxCallbackData {
			skipped = append(skipped, l)
			continue
		}
		kb = append(kb, []Button{{Text: l, Data: data}})
	}
	return kb, skipped
}

func formatScore(avg *float64) string {
	if avg == nil {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func statisticsText(st model.Statistics) string {
	var b strings.Builder
	b.WriteString("📊 <b>Статистика</b>\n\n")
	fmt.Fprintf(&b, "📚 Записей: %d\n", st.TotalItems)
	fmt.Fprintf(&b, "👥 Пользователей: %d\n", st.TotalUsers)
	fmt.Fprintf(&b, "⭐ Оценок: %d\n\n", st.TotalRatings)
	b.WriteString("🏆 <b>Топ-5 записей:</b>\n")
	for i, s := range st.TopItems {
		fmt.Fprintf(&b, "%d. %s - %s⭐ (оценок: %d)\n", i+1, esc(s.Title), formatScore(s.AvgScore), s.Ratings)
	}
	b.WriteString("\n📚 <b>По категориям:</b>\n")
	for _, c := range st.ByCategory {
		name := c.Category
		if name == "" {
			name = "Без категории"
		}
		fmt.Fprintf(&b, "%s: %d\n", esc(name), c.Total)
	}
	return b.String()
}

// userBlocks: по одному блоку текста на пользователя.
func userBlocks(users []model.User) []string {
	blocks := make([]string, 0, len(users)+1)
	blocks = append(blocks, "👥 <b>Список пользователей:</b>\n\n")
	for _, u := range users {
		username := "отсутствует"
		if u.Username != "" {
			username = "@" + u.Username
		}
		name := strings.TrimSpace(u.FirstName + " " + u.LastName)
		blocks = append(blocks, fmt.Sprintf(
			"ID: %d\nUsername: %s\nИмя: %s\nРоль: %s\nЗарегистрирован: %s\n\n",
			u.ID, esc(username), esc(name), u.Role, u.CreatedAt.Format("2006-01-02 15:04:05"),
		))
	}
	return blocks
}

// chunkBlocks склеивает блоки в сообщения не длиннее limit символов.
// Блок длиннее limit делится только по переводам строк, чтобы не разрывать HTML-разметку;
// строка длиннее limit уходит отдельным сообщением целиком.
func chunkBlocks(blocks []string, limit int) []string {
	var (
		out []string
		cur strings.Builder
		n   int
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			n = 0
		}
	}
	for _, blk := range blocks {
		pieces := []string{blk}
		if utf8.RuneCountInString(blk) > limit {
			pieces = strings.SplitAfter(blk, "\n")
		}
		for _, p := range pieces {
			size := utf8.RuneCountInString(p)
			if size == 0 {
				continue
			}
			if n+size > limit {
				flush()
			}
			cur.WriteString(p)
			n += size
		}
	}
	flush()
	return out
}
