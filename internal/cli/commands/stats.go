package commands

import (
	"CatalogBot/internal/config"
	"context"
	"errors"
	"fmt"
)

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "Сводная статистика каталога" }
func (statsCmd) Usage() string       { return "stats" }

func (statsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	svc, done, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer done()

	st, ok := svc.Statistics(ctx)
	if !ok {
		return errors.New("statistics unavailable")
	}
	fmt.Fprintf(Out, "items:    %d\n", st.TotalItems)
	fmt.Fprintf(Out, "users:    %d\n", st.TotalUsers)
	fmt.Fprintf(Out, "ratings:  %d\n", st.TotalRatings)
	fmt.Fprintln(Out, "top:")
	for i, s := range st.TopItems {
		avg := 0.0
		if s.AvgScore != nil {
			avg = *s.AvgScore
		}
		fmt.Fprintf(Out, "  %d. [%d] %s  avg=%.1f  ratings=%d\n", i+1, s.ItemID, s.Title, avg, s.Ratings)
	}
	fmt.Fprintln(Out, "categories:")
	for _, c := range st.ByCategory {
		name := c.Category
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(Out, "  %s: %d\n", name, c.Total)
	}
	return nil
}

func init() { RegisterCmd(statsCmd{}) }
