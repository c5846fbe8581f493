package commands

import (
	"CatalogBot/internal/config"
	"CatalogBot/internal/model"
	"context"
	"errors"
	"fmt"
	"strconv"
)

type grantCmd struct{}

func (grantCmd) Name() string { return "grant" }
func (grantCmd) Description() string {
	return "Назначить роль пользователю, который уже запускал бота"
}
func (grantCmd) Usage() string { return "grant <user_id> <user|admin|superadmin>" }

func (grantCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return ErrUsage
	}
	role, ok := model.ParseRole(args[1])
	if !ok {
		return ErrUsage
	}

	svc, done, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer done()

	u := svc.UserByID(ctx, id)
	if u == nil {
		return fmt.Errorf("user %d not found", id)
	}
	if u.Role == role {
		fmt.Fprintf(Out, "Пользователь %d уже имеет роль %s\n", id, role)
		return nil
	}
	if !svc.SetRole(ctx, id, role) {
		return errors.New("role was not updated")
	}
	fmt.Fprintf(Out, "Пользователь %d: %s -> %s\n", id, u.Role, role)
	return nil
}

func init() { RegisterCmd(grantCmd{}) }
