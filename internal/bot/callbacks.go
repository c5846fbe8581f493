package bot

import (
	"CatalogBot/internal/model"
	"context"
	"fmt"
	"strconv"
)

func (d *Dispatcher) cbItem(ctx context.Context, c Callback, cmd Command) (string, error) {
	it := d.catalog.LookupItem(ctx, cmd.ID)
	if it == nil {
		return textItemNotFound, nil
	}
	d.showDetails(ctx, c.ChatID, c.From.ID, *it)
	return "", nil
}

func (d *Dispatcher) showDetails(ctx context.Context, chatID, userID int64, it model.Item) {
	avg, count := d.catalog.RatingSummary(ctx, it.ID)
	hasDocument := d.assets.Exists(ctx, it.DocumentPath)

	var link string
	if hasDocument && d.links != nil {
		url, err := d.links.Link(*it.DocumentPath)
		if err != nil {
			d.logger.Warnw("sign download link failed", "item_id", it.ID, "error", err)
		} else {
			link = url
		}
	}
	text := itemDetails(it, avg, count, d.catalog.RatingsOf(ctx, it.ID), link)
	canManage := d.access.Allowed(ctx, userID, model.RoleAdmin)
	d.sendCard(ctx, chatID, it, text, detailsKeyboard(it, hasDocument, canManage))
}

func (d *Dispatcher) cbDownload(ctx context.Context, c Callback, cmd Command) (string, error) {
	it := d.catalog.LookupItem(ctx, cmd.ID)
	if it == nil || !d.assets.Exists(ctx, it.DocumentPath) {
		return textDocumentNotFound, nil
	}
	data, err := d.assets.Read(ctx, *it.DocumentPath)
	if err != nil {
		d.logger.Errorw("read document failed", "item_id", it.ID, "error", err)
		return textDocumentNotFound, nil
	}
	caption := fmt.Sprintf("📚 %s - %s", esc(it.Title), esc(it.Author))
	name := fmt.Sprintf("%d.pdf", it.ID)
	if err := d.sender.SendDocument(ctx, c.ChatID, File{Name: name, Data: data}, caption); err != nil {
		return "", err
	}
	return "", nil
}

func (d *Dispatcher) cbFavorite(ctx context.Context, c Callback, cmd Command) (string, error) {
	if d.catalog.LookupItem(ctx, cmd.ID) == nil {
		return textItemNotFound, nil
	}
	if d.catalog.AddFavorite(ctx, c.From.ID, cmd.ID) {
		return textFavoriteAdded, nil
	}
	return textFavoriteFailed, nil
}

func (d *Dispatcher) cbUnfavorite(ctx context.Context, c Callback, cmd Command) (string, error) {
	if !d.catalog.RemoveFavorite(ctx, c.From.ID, cmd.ID) {
		return textActionFailed, nil
	}
	if err := d.sender.DeleteMessage(ctx, c.ChatID, c.MessageID); err != nil {
		d.logger.Warnw("delete favorite card failed", "chat_id", c.ChatID, "error", err)
	}
	return textFavoriteRemoved, nil
}

func (d *Dispatcher) cbRate(ctx context.Context, c Callback, cmd Command) (string, error) {
	if d.catalog.LookupItem(ctx, cmd.ID) == nil {
		return textItemNotFound, nil
	}
	d.send(ctx, c.ChatID, textRatePrompt, ratingKeyboard(cmd.ID))
	return "", nil
}

func (d *Dispatcher) cbScore(ctx context.Context, c Callback, cmd Command) (string, error) {
	if d.catalog.LookupItem(ctx, cmd.ID) == nil {
		return textItemNotFound, nil
	}
	fields := map[string]string{
		"item":  strconv.FormatInt(cmd.ID, 10),
		"score": strconv.Itoa(cmd.Score),
	}
	return "", d.begin(ctx, c.ChatID, stepRateComment, fields, fmt.Sprintf(textCommentPrompt, cmd.Score))
}

func (d *Dispatcher) cbCategory(ctx context.Context, c Callback, cmd Command) (string, error) {
	items := d.catalog.ItemsByCategory(ctx, cmd.Label)
	if len(items) == 0 {
		return fmt.Sprintf(textCategoryEmpty, cmd.Label), nil
	}
	d.reply(ctx, c.ChatID, fmt.Sprintf(textCategoryHeader, esc(cmd.Label)))
	if len(items) > SearchResultLimit {
		items = items[:SearchResultLimit]
	}
	for _, it := range items {
		d.sendCard(ctx, c.ChatID, it, cardText(it, false), cardKeyboard(it, false))
	}
	return "", nil
}

func (d *Dispatcher) cbEdit(ctx context.Context, c Callback, cmd Command) (string, error) {
	it := d.catalog.LookupItem(ctx, cmd.ID)
	if it == nil {
		return textItemNotFound, nil
	}
	d.send(ctx, c.ChatID, fmt.Sprintf(textEditMenu, esc(it.Title)), editKeyboard(it.ID))
	return "", nil
}

func (d *Dispatcher) cbEditField(ctx context.Context, c Callback, cmd Command) (string, error) {
	it := d.catalog.LookupItem(ctx, cmd.ID)
	if it == nil {
		return textItemNotFound, nil
	}
	fields := map[string]string{
		"item":  strconv.FormatInt(it.ID, 10),
		"field": cmd.Field,
	}
	var (
		step   = stepEditText
		prompt string
	)
	switch cmd.Field {
	case FieldTitle:
		prompt = fmt.Sprintf(textEditCurrent, esc(it.Title), textEditNewTitle)
	case FieldAuthor:
		prompt = fmt.Sprintf(textEditCurrent, esc(it.Author), textEditNewAuthor)
	case FieldDescription:
		prompt = fmt.Sprintf(textEditCurrent, esc(it.Description), textEditNewDesc)
	case FieldCategory:
		prompt = fmt.Sprintf(textEditCurrent, esc(it.Category), textEditNewCategory)
	case FieldImage:
		step, prompt = stepEditImage, textEditNewImage
	case FieldDocument:
		step, prompt = stepEditDocument, textEditNewDocument
	}
	return "", d.begin(ctx, c.ChatID, step, fields, prompt)
}

func (d *Dispatcher) cbDelete(ctx context.Context, c Callback, cmd Command) (string, error) {
	it := d.catalog.LookupItem(ctx, cmd.ID)
	if it == nil {
		return textItemNotFound, nil
	}
	d.send(ctx, c.ChatID, fmt.Sprintf(textDeleteConfirm, esc(it.Title)), deleteKeyboard(it.ID))
	return "", nil
}

func (d *Dispatcher) cbDeleteConfirm(ctx context.Context, c Callback, cmd Command) (string, error) {
	if !d.catalog.DeleteItem(ctx, cmd.ID) {
		d.reply(ctx, c.ChatID, textDeleteFailed)
		return "", nil
	}
	d.reply(ctx, c.ChatID, textDeleted)
	if err := d.sender.DeleteMessage(ctx, c.ChatID, c.MessageID); err != nil {
		d.logger.Warnw("delete confirmation message failed", "chat_id", c.ChatID, "error", err)
	}
	return "", nil
}

func (d *Dispatcher) cbDeleteCancel(ctx context.Context, c Callback, _ Command) (string, error) {
	if err := d.sender.DeleteMessage(ctx, c.ChatID, c.MessageID); err != nil {
		d.logger.Warnw("delete confirmation message failed", "chat_id", c.ChatID, "error", err)
	}
	return textDeleteCancelled, nil
}

func (d *Dispatcher) cbPromote(ctx context.Context, c Callback, _ Command) (string, error) {
	return "", d.begin(ctx, c.ChatID, stepPromote, nil, textPromotePrompt)
}

func (d *Dispatcher) cbAdmins(ctx context.Context, c Callback, _ Command) (string, error) {
	admins := d.catalog.Admins(ctx)
	if len(admins) == 0 {
		d.reply(ctx, c.ChatID, textNoAdmins)
		return "", nil
	}
	d.send(ctx, c.ChatID, textPickAdmin, demoteKeyboard(admins))
	return "", nil
}

// cbDemote снимает права только с админа; суперадмина понизить нельзя.
func (d *Dispatcher) cbDemote(ctx context.Context, c Callback, cmd Command) (string, error) {
	target := d.catalog.UserByID(ctx, cmd.ID)
	if target == nil {
		return textUserNotFound, nil
	}
	if target.Role != model.RoleAdmin {
		return textCannotDemote, nil
	}
	if !d.catalog.SetRole(ctx, target.ID, model.RoleUser) {
		d.reply(ctx, c.ChatID, textGenericError)
		return "", nil
	}
	d.reply(ctx, c.ChatID, fmt.Sprintf(textDemoted, target.ID))
	return "", nil
}
