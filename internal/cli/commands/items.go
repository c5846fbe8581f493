package commands

import (
	"CatalogBot/internal/config"
	"context"
	"fmt"
	"strconv"
	"strings"
)

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "Найти записи по названию или автору"
}
func (itemsCmd) Usage() string { return "items <query>" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return ErrUsage
	}
	svc, done, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer done()

	list := svc.SearchItems(ctx, query)
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return nil
	}
	for _, it := range list {
		fmt.Fprintf(Out, "- %d  %s  author=%s  category=%s\n", it.ID, it.Title, it.Author, it.Category)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type itemShowCmd struct{}

func (itemShowCmd) Name() string        { return "item-show" }
func (itemShowCmd) Description() string { return "Показать запись по ID" }
func (itemShowCmd) Usage() string       { return "item-show <id>" }

func (itemShowCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	id, err := parseItemID(args)
	if err != nil {
		return err
	}
	svc, done, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer done()

	it := svc.LookupItem(ctx, id)
	if it == nil {
		return fmt.Errorf("item %d not found", id)
	}
	avg, count := svc.RatingSummary(ctx, id)
	score := "-"
	if avg != nil {
		score = fmt.Sprintf("%.1f", *avg)
	}
	fmt.Fprintf(Out, "id:          %d\n", it.ID)
	fmt.Fprintf(Out, "title:       %s\n", it.Title)
	fmt.Fprintf(Out, "author:      %s\n", it.Author)
	fmt.Fprintf(Out, "category:    %s\n", it.Category)
	fmt.Fprintf(Out, "description: %s\n", it.Description)
	fmt.Fprintf(Out, "image:       %s\n", orDash(it.ImagePath))
	fmt.Fprintf(Out, "document:    %s\n", orDash(it.DocumentPath))
	fmt.Fprintf(Out, "rating:      %s (%d)\n", score, count)
	fmt.Fprintf(Out, "created:     %s by %d\n", it.CreatedAt.Format("2006-01-02 15:04:05"), it.CreatedBy)
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string { return "item-delete" }
func (itemDeleteCmd) Description() string {
	return "Удалить запись вместе с оценками, избранным и файлами"
}
func (itemDeleteCmd) Usage() string { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	id, err := parseItemID(args)
	if err != nil {
		return err
	}
	svc, done, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer done()

	if !svc.DeleteItem(ctx, id) {
		return fmt.Errorf("item %d was not deleted", id)
	}
	fmt.Fprintf(Out, "Запись %d удалена\n", id)
	return nil
}

func parseItemID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

func orDash(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemShowCmd{})
	RegisterCmd(itemDeleteCmd{})
}
