package commands

import (
	"CatalogBot/internal/config"
	"CatalogBot/internal/model"
	"context"
	"fmt"
)

type usersCmd struct{}

func (usersCmd) Name() string { return "users" }
func (usersCmd) Description() string {
	return "Показать пользователей (можно отфильтровать по роли)"
}
func (usersCmd) Usage() string { return "users [user|admin|superadmin]" }

func (usersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	var filter model.Role
	if len(args) == 1 {
		r, ok := model.ParseRole(args[0])
		if !ok {
			return ErrUsage
		}
		filter = r
	}

	svc, done, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer done()

	shown := 0
	for _, u := range svc.ListUsers(ctx) {
		if filter != "" && u.Role != filter {
			continue
		}
		username := "-"
		if u.Username != "" {
			username = "@" + u.Username
		}
		fmt.Fprintf(Out, "- %d  %s  %s  role=%s  since=%s\n",
			u.ID, username, u.DisplayName(), u.Role, u.CreatedAt.Format("2006-01-02 15:04:05"))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(Out, "Нет пользователей")
		return nil
	}
	fmt.Fprintf(Out, "Всего: %d\n", shown)
	return nil
}

func init() { RegisterCmd(usersCmd{}) }
