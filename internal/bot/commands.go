package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
)

var errStatistics = errors.New("statistics unavailable")

func (d *Dispatcher) onStart(ctx context.Context, m Message) {
	role := d.access.RoleOf(ctx, m.From.ID)
	name := m.From.FirstName
	if name == "" {
		name = m.From.Username
	}
	text := fmt.Sprintf(textGreeting, html.EscapeString(name))
	if err := d.sender.SendMenu(ctx, m.ChatID, text, menuFor(role)); err != nil {
		d.logger.Warnw("send menu failed", "chat_id", m.ChatID, "error", err)
	}
}

func (d *Dispatcher) onSearch(ctx context.Context, m Message) error {
	return d.begin(ctx, m.ChatID, stepSearch, nil, textSearchPrompt)
}

// search показывает первые SearchResultLimit карточек по запросу.
func (d *Dispatcher) search(ctx context.Context, chatID int64, query string) error {
	items := d.catalog.SearchItems(ctx, query)
	if len(items) == 0 {
		d.reply(ctx, chatID, textSearchEmpty)
		return nil
	}
	total := len(items)
	if total > SearchResultLimit {
		items = items[:SearchResultLimit]
	}
	for _, it := range items {
		d.sendCard(ctx, chatID, it, cardText(it, true), cardKeyboard(it, false))
	}
	if total > SearchResultLimit {
		d.reply(ctx, chatID, fmt.Sprintf(textSearchTooMany, SearchResultLimit, total))
	}
	return nil
}

func (d *Dispatcher) onCategories(ctx context.Context, m Message) error {
	labels := d.catalog.Categories(ctx)
	kb, skipped := categoriesKeyboard(labels)
	for _, l := range skipped {
		d.logger.Warnw("category label too long for a button", "category", l)
	}
	if len(kb) == 0 {
		d.reply(ctx, m.ChatID, textNoCategories)
		return nil
	}
	d.send(ctx, m.ChatID, textPickCategory, kb)
	return nil
}

func (d *Dispatcher) onFavorites(ctx context.Context, m Message) error {
	items := d.catalog.FavoritesOf(ctx, m.From.ID)
	if len(items) == 0 {
		d.reply(ctx, m.ChatID, textNoFavorites)
		return nil
	}
	for _, it := range items {
		d.sendCard(ctx, m.ChatID, it, cardText(it, true), cardKeyboard(it, true))
	}
	return nil
}

func (d *Dispatcher) onAddItem(ctx context.Context, m Message) error {
	return d.begin(ctx, m.ChatID, stepAddTitle, nil, textAddTitle)
}

func (d *Dispatcher) onStatistics(ctx context.Context, m Message) error {
	st, ok := d.catalog.Statistics(ctx)
	if !ok {
		return errStatistics
	}
	d.reply(ctx, m.ChatID, statisticsText(*st))
	return nil
}

func (d *Dispatcher) onUsers(ctx context.Context, m Message) error {
	users := d.catalog.ListUsers(ctx)
	for _, chunk := range chunkBlocks(userBlocks(users), MaxMessageLength) {
		d.reply(ctx, m.ChatID, chunk)
	}
	return nil
}

func (d *Dispatcher) onManageAdmins(ctx context.Context, m Message) error {
	d.send(ctx, m.ChatID, textAdminsMenu, adminsMenuKeyboard())
	return nil
}
