package bot

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/dialog"
	"CatalogBot/internal/model"
	"CatalogBot/internal/repo"
	"CatalogBot/internal/service"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Имена шагов диалогов.
const (
	stepSearch       = "search.query"
	stepAddTitle     = "add.title"
	stepAddAuthor    = "add.author"
	stepAddDesc      = "add.description"
	stepAddCategory  = "add.category"
	stepAddImage     = "add.image"
	stepAddDocument  = "add.document"
	stepEditText     = "edit.text"
	stepEditImage    = "edit.image"
	stepEditDocument = "edit.document"
	stepRateComment  = "rate.comment"
	stepPromote      = "admin.promote"
)

const pdfMimeType = "application/pdf"

func (d *Dispatcher) registerFlows() {
	d.engine.Handle(stepSearch, d.stepSearch)

	admin := func(fn dialog.StepFunc) dialog.StepFunc { return d.guarded(model.RoleAdmin, fn) }
	d.engine.Handle(stepAddTitle, admin(d.textStep(stepAddTitle, "title", stepAddAuthor, textAddAuthor)))
	d.engine.Handle(stepAddAuthor, admin(d.textStep(stepAddAuthor, "author", stepAddDesc, textAddDescription)))
	d.engine.Handle(stepAddDesc, admin(d.textStep(stepAddDesc, "description", stepAddCategory, textAddCategory)))
	d.engine.Handle(stepAddCategory, admin(d.textStep(stepAddCategory, "category", stepAddImage, textAddImage)))
	d.engine.Handle(stepAddImage, admin(d.stepAddImage))
	d.engine.Handle(stepAddDocument, admin(d.stepAddDocument))

	d.engine.Handle(stepEditText, admin(d.stepEditText))
	d.engine.Handle(stepEditImage, admin(d.stepEditImage))
	d.engine.Handle(stepEditDocument, admin(d.stepEditDocument))

	d.engine.Handle(stepRateComment, d.stepRateComment)
	d.engine.Handle(stepPromote, d.guarded(model.RoleSuperadmin, d.stepPromote))

	d.engine.OnDiscard(d.dropDialog)
}

// guarded повторно проверяет роль на каждом ответе: права могли отозвать,
// пока шаг ждал ввода. При отказе диалог завершается.
func (d *Dispatcher) guarded(min model.Role, fn dialog.StepFunc) dialog.StepFunc {
	return func(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
		if !d.gate(ctx, in.UserID, min) {
			d.logger.Infow("access denied in dialog", "chat_id", in.ChatID, "user_id", in.UserID)
			d.discard(ctx, f["image"])
			d.reply(ctx, in.ChatID, deniedText(min))
			return dialog.Done, nil
		}
		return fn(ctx, in, f)
	}
}

// dropDialog удаляет обложку, сохранённую брошенной цепочкой добавления.
func (d *Dispatcher) dropDialog(ctx context.Context, chatID int64, st *dialog.State) {
	if ref := st.Fields["image"]; ref != "" {
		d.logger.Debugw("dropping abandoned upload", "chat_id", chatID, "step", st.Step)
		d.discard(ctx, ref)
	}
}

// textStep сохраняет текст ответа в поле key и переходит к шагу next.
func (d *Dispatcher) textStep(self, key, next, prompt string) dialog.StepFunc {
	return func(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			d.reply(ctx, in.ChatID, textNeedText)
			return self, nil
		}
		f[key] = text
		d.reply(ctx, in.ChatID, prompt)
		return next, nil
	}
}

func (d *Dispatcher) stepSearch(ctx context.Context, in dialog.Input, _ map[string]string) (string, error) {
	query := strings.TrimSpace(in.Text)
	if query == "" {
		d.reply(ctx, in.ChatID, textNeedText)
		return stepSearch, nil
	}
	return dialog.Done, d.search(ctx, in.ChatID, query)
}

func (d *Dispatcher) stepAddImage(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
	if in.Photo != nil {
		data, err := d.sender.Download(ctx, in.Photo.FileID)
		if err != nil {
			d.logger.Warnw("download photo failed", "chat_id", in.ChatID, "error", err)
			d.reply(ctx, in.ChatID, textUploadFailed)
			return stepAddImage, nil
		}
		ref, err := d.assets.SaveImage(ctx, in.Photo.FileName, data)
		if err != nil {
			return dialog.Done, err
		}
		f["image"] = ref
	}
	// любой другой ответ, включая «пропустить», означает запись без обложки
	d.reply(ctx, in.ChatID, textAddDocument)
	return stepAddDocument, nil
}

// receivePDF скачивает и сохраняет присланный PDF. ok == false: нужно переспросить.
func (d *Dispatcher) receivePDF(ctx context.Context, in dialog.Input) (ref string, ok bool, err error) {
	doc := in.Document
	if doc == nil || !isPDF(doc) {
		d.reply(ctx, in.ChatID, textNeedPDF)
		return "", false, nil
	}
	data, err := d.sender.Download(ctx, doc.FileID)
	if err != nil {
		d.logger.Warnw("download document failed", "chat_id", in.ChatID, "error", err)
		d.reply(ctx, in.ChatID, textUploadFailed)
		return "", false, nil
	}
	ref, err = d.assets.SaveDocument(ctx, data)
	if errors.Is(err, assets.ErrUnsupportedDocument) || errors.Is(err, assets.ErrEmptyFile) {
		d.reply(ctx, in.ChatID, textNeedPDF)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return ref, true, nil
}

func isPDF(a *dialog.Attachment) bool {
	return a.MimeType == pdfMimeType || strings.HasSuffix(strings.ToLower(a.FileName), ".pdf")
}

func (d *Dispatcher) stepAddDocument(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
	ref, ok, err := d.receivePDF(ctx, in)
	if err != nil {
		d.discard(ctx, f["image"])
		return dialog.Done, err
	}
	if !ok {
		return stepAddDocument, nil
	}
	id, added := d.catalog.AddItem(ctx, service.NewItem{
		Title:        f["title"],
		Author:       f["author"],
		Description:  f["description"],
		Category:     f["category"],
		ImagePath:    f["image"],
		DocumentPath: ref,
		CreatedBy:    in.UserID,
	})
	if !added {
		d.reply(ctx, in.ChatID, textItemAddFailed)
		return dialog.Done, nil
	}
	d.reply(ctx, in.ChatID, fmt.Sprintf(textItemAdded, id))
	return dialog.Done, nil
}

func (d *Dispatcher) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := d.assets.Remove(ctx, ref); err != nil {
		d.logger.Warnw("asset cleanup failed", "ref", ref, "error", err)
	}
}

func itemIDOf(f map[string]string) (int64, error) {
	id, err := strconv.ParseInt(f["item"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("dialog item id %q: %w", f["item"], err)
	}
	return id, nil
}

func (d *Dispatcher) finishEdit(ctx context.Context, chatID, itemID int64, ch repo.ItemChanges) {
	if !d.catalog.UpdateItem(ctx, itemID, ch) {
		d.reply(ctx, chatID, textEditFailed)
		return
	}
	title := ""
	if it := d.catalog.LookupItem(ctx, itemID); it != nil {
		title = it.Title
	}
	d.send(ctx, chatID, fmt.Sprintf(textEdited, esc(title)), afterEditKeyboard(itemID))
}

func (d *Dispatcher) stepEditText(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
	id, err := itemIDOf(f)
	if err != nil {
		return dialog.Done, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		d.reply(ctx, in.ChatID, textNeedText)
		return stepEditText, nil
	}
	var ch repo.ItemChanges
	switch f["field"] {
	case FieldTitle:
		ch.Title = &text
	case FieldAuthor:
		ch.Author = &text
	case FieldDescription:
		ch.Description = &text
	case FieldCategory:
		ch.Category = &text
	default:
		return dialog.Done, fmt.Errorf("edit: unsupported field %q", f["field"])
	}
	d.finishEdit(ctx, in.ChatID, id, ch)
	return dialog.Done, nil
}

func (d *Dispatcher) stepEditImage(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
	id, err := itemIDOf(f)
	if err != nil {
		return dialog.Done, err
	}
	if in.Photo == nil {
		d.reply(ctx, in.ChatID, textNeedPhoto)
		return stepEditImage, nil
	}
	data, err := d.sender.Download(ctx, in.Photo.FileID)
	if err != nil {
		d.logger.Warnw("download photo failed", "chat_id", in.ChatID, "error", err)
		d.reply(ctx, in.ChatID, textUploadFailed)
		return stepEditImage, nil
	}
	ref, err := d.assets.SaveImage(ctx, in.Photo.FileName, data)
	if err != nil {
		return dialog.Done, err
	}
	d.finishEdit(ctx, in.ChatID, id, repo.ItemChanges{ImagePath: &ref})
	return dialog.Done, nil
}

func (d *Dispatcher) stepEditDocument(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
	id, err := itemIDOf(f)
	if err != nil {
		return dialog.Done, err
	}
	ref, ok, err := d.receivePDF(ctx, in)
	if err != nil {
		return dialog.Done, err
	}
	if !ok {
		return stepEditDocument, nil
	}
	d.finishEdit(ctx, in.ChatID, id, repo.ItemChanges{DocumentPath: &ref})
	return dialog.Done, nil
}

func (d *Dispatcher) stepRateComment(ctx context.Context, in dialog.Input, f map[string]string) (string, error) {
	id, err := itemIDOf(f)
	if err != nil {
		return dialog.Done, err
	}
	score, err := strconv.Atoi(f["score"])
	if err != nil {
		return dialog.Done, fmt.Errorf("dialog score %q: %w", f["score"], err)
	}
	comment := strings.TrimSpace(in.Text)
	if strings.EqualFold(comment, noCommentAnswer) {
		comment = ""
	}
	// запись могли удалить, пока ждали комментарий
	if d.catalog.LookupItem(ctx, id) == nil {
		d.reply(ctx, in.ChatID, textItemNotFound)
		return dialog.Done, nil
	}
	if !d.catalog.Rate(ctx, in.UserID, id, score, comment) {
		d.reply(ctx, in.ChatID, textGenericError)
		return dialog.Done, nil
	}
	d.reply(ctx, in.ChatID, textRated)
	return dialog.Done, nil
}

func (d *Dispatcher) stepPromote(ctx context.Context, in dialog.Input, _ map[string]string) (string, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(in.Text), 10, 64)
	if err != nil {
		d.reply(ctx, in.ChatID, textPromoteNotInt)
		return stepPromote, nil
	}
	target := d.catalog.UserByID(ctx, id)
	if target == nil {
		d.reply(ctx, in.ChatID, textUserNotFound)
		return dialog.Done, nil
	}
	if target.Role.AtLeast(model.RoleAdmin) {
		d.reply(ctx, in.ChatID, fmt.Sprintf(textAlreadyAdmin, id))
		return dialog.Done, nil
	}
	if !d.catalog.SetRole(ctx, id, model.RoleAdmin) {
		d.reply(ctx, in.ChatID, textGenericError)
		return dialog.Done, nil
	}
	d.reply(ctx, in.ChatID, fmt.Sprintf(textPromoted, id))
	return dialog.Done, nil
}
