package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"pricecheck-service/internal/bootstrap"
	"pricecheck-service/internal/config"
	"pricecheck-service/internal/pricecheck/model"
	"pricecheck-service/internal/pricecheck/service"
)

const usage = `usage: pricecheck <command> [flags] [args]

commands:
  categories                         list category options
  check <name>                       look up a new item name in the SJ history
  filter -score gte95 -category A     list similar pairs by score and category
                                     (repeat -category for several)
  pairs <item>                       side-by-side pairs for an item with name diffs
  history [-similar] <item>          SJ purchase history for an item
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// the CLI logs to stderr only so stdout stays clean
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().
		Level(levelOrWarn(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer app.Close()

	if err := run(ctx, app.Service, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		if errors.Is(err, model.ErrPreconditionNotMet) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func levelOrWarn(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl < zerolog.WarnLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

func run(ctx context.Context, svc *service.Service, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	switch cmd {
	case "categories":
		cats, err := svc.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintln(out, c)
		}
		return nil

	case "check":
		if err := fs.Parse(args); err != nil {
			return err
		}
		res, err := svc.CheckHistory(ctx, strings.Join(fs.Args(), " "))
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderCheck(res))
		return nil

	case "filter":
		score := fs.String("score", string(model.ScoreAtLeast95), "gte90 | gte95 | eq100")
		var cats categoryFlags
		fs.Var(&cats, "category", "category to include; repeat for several")
		limit := fs.String("limit", "100", "100 | 200 | all")
		order := fs.String("order", "desc", "desc | asc")
		if err := fs.Parse(args); err != nil {
			return err
		}
		view, err := parseView(*limit, *order)
		if err != nil {
			return err
		}
		req := model.FilterRequest{Score: model.ScoreThreshold(*score), Categories: []string(cats)}
		pairs, err := svc.Filter(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderPairs(pairs, service.ApplyView(pairs, view), view.Limit == 0))
		return nil

	case "pairs":
		if err := fs.Parse(args); err != nil {
			return err
		}
		item := strings.Join(fs.Args(), " ")
		details, err := svc.PairDetails(ctx, item)
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderDetails(item, details))
		return nil

	case "history":
		similar := fs.Bool("similar", false, "include names of pairs scoring 95 or more")
		if err := fs.Parse(args); err != nil {
			return err
		}
		item := strings.Join(fs.Args(), " ")
		tbl, err := svc.PurchaseHistory(ctx, item, *similar)
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderHistory(tbl))
		return nil
	}
	return fmt.Errorf("%w: unknown command %q\n%s", model.ErrPreconditionNotMet, cmd, usage)
}

// categoryFlags collects repeated -category values as given; names may contain commas.
type categoryFlags []string

func (c *categoryFlags) String() string { return strings.Join(*c, "; ") }

func (c *categoryFlags) Set(v string) error {
	if v = strings.TrimSpace(v); v != "" {
		*c = append(*c, v)
	}
	return nil
}

func parseView(limit, order string) (model.FilterView, error) {
	v := model.FilterView{Limit: 100}
	switch strings.ToLower(strings.TrimSpace(limit)) {
	case "", "100":
	case "200":
		v.Limit = 200
	case "all":
		v.Limit = 0
	default:
		return v, fmt.Errorf("%w: -limit must be 100, 200 or all, got %q", model.ErrPreconditionNotMet, limit)
	}
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "desc":
	case "asc":
		v.Ascending = true
	default:
		return v, fmt.Errorf("%w: -order must be asc or desc, got %q", model.ErrPreconditionNotMet, order)
	}
	return v, nil
}
