package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadedpez/termitaire/internal/config"
	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/fadedpez/termitaire/pkg/pile"
	"github.com/fadedpez/termitaire/pkg/scheduler"
	"github.com/fadedpez/termitaire/pkg/services/solitaire"
	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/storage/elasticsearch"
	"github.com/fadedpez/termitaire/pkg/storage/file"
	"github.com/fadedpez/termitaire/pkg/storage/memory"
	"github.com/fadedpez/termitaire/pkg/storage/sqlite"
	"github.com/sanity-io/litter"
)

const (
	previewWidth  = 70
	previewHeight = 28
)

func main() {
	os.Exit(run())
}

// options are the command-line flags
type options struct {
	player  string
	resume  string
	abandon string
	list    bool
	cycle   int
	dump    bool
}

func run() int {
	var opts options
	flag.StringVar(&opts.player, "player", os.Getenv("USER"), "Player owning new games")
	flag.StringVar(&opts.resume, "resume", "", "ID of a saved game to resume")
	flag.StringVar(&opts.abandon, "abandon", "", "ID of a saved game to delete")
	flag.BoolVar(&opts.list, "list", false, "List saved games and exit")
	flag.IntVar(&opts.cycle, "cycle", 0, "Advance the stock cursor this many cards before saving")
	flag.BoolVar(&opts.dump, "dump", false, "Dump the table snapshot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logging.Default.SetLevel(cfg.LogLevel)
	log := logging.Default

	store, err := openStorage(cfg)
	if err != nil {
		log.Error("Failed to open %s storage: %v", cfg.StorageBackend, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withStorage(store, log, func() int {
		return play(ctx, os.Stdout, store, cfg.MaxGameAge, opts, log)
	})
}

// withStorage runs action and closes store on every exit path. A panic in
// action is logged and reported as exit code 2.
func withStorage(store storage.Storage, log *logging.Logger, action func() int) (code int) {
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing storage: %v", err)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				log.LogError(err)
			} else {
				log.Error("Unexpected panic: %v", r)
			}
			code = 2
		}
	}()

	return action()
}

func play(ctx context.Context, out io.Writer, store storage.Storage, maxAge time.Duration, opts options, log *logging.Logger) int {
	maintenance, err := scheduler.NewStorageMaintenance(store, maxAge)
	if err != nil {
		log.Warn("Failed to schedule pruning: %v", err)
	} else if err := maintenance.RunNow(ctx); err != nil {
		log.Warn("Failed to prune old games: %v", err)
	}

	svc := solitaire.NewService(store, solitaire.WithLogger(log))

	switch {
	case opts.list:
		return listGames(ctx, out, svc, log)
	case opts.abandon != "":
		if err := svc.Abandon(ctx, opts.abandon); err != nil {
			log.LogError(err)
			return 1
		}
		fmt.Fprintf(out, "Abandoned game %s\n", opts.abandon)
		return 0
	}

	var game *solitaire.Game
	if opts.resume != "" {
		game, err = svc.Resume(ctx, opts.resume)
	} else {
		game, err = svc.NewGame(ctx, opts.player)
	}
	if err != nil {
		log.LogError(err)
		return 1
	}

	stock := game.Table.Stock()
	for i := 0; i < opts.cycle; i++ {
		if _, ok := stock.Next(); !ok {
			stock.Reset()
		}
	}

	surface := newTextSurface(previewWidth, previewHeight)
	game.Table.Render(pile.Region{Width: previewWidth, Height: previewHeight}, surface)
	fmt.Fprint(out, surface)

	if opts.dump {
		fmt.Fprintln(out, litter.Sdump(game.Table.Snapshot()))
	}

	if err := svc.Save(ctx, game); err != nil {
		log.LogError(err)
		return 1
	}

	fmt.Fprintf(out, "Game %s saved for %s\n", game.ID, game.Player)
	return 0
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		return file.New(&storage.Options{
			Path:       cfg.SaveFile,
			MaxGameAge: cfg.MaxGameAge,
		})
	case config.BackendElasticsearch:
		base, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := elasticsearch.NewStorage(base, &elasticsearch.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			base.Close()
			return nil, err
		}
		return store, nil
	default:
		return sqlite.New(cfg.SQLitePath)
	}
}

func listGames(ctx context.Context, out io.Writer, svc *solitaire.Service, log *logging.Logger) int {
	games, err := svc.List(ctx)
	if err != nil {
		log.LogError(err)
		return 1
	}
	if len(games) == 0 {
		fmt.Fprintln(out, "No saved games.")
		return 0
	}
	for _, g := range games {
		fmt.Fprintf(out, "%s  %-12s  %s\n", g.ID, g.Player, g.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return 0
}
