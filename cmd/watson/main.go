package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/watson/internal/logger"
	"github.com/cognicore/watson/pkg/watson"
	"github.com/cognicore/watson/pkg/watson/config"
	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/store"
	"github.com/cognicore/watson/pkg/watson/store/memstore"
	"github.com/cognicore/watson/pkg/watson/store/sqlite"
	"github.com/cognicore/watson/pkg/watson/story"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the global flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	dbPath     string
	storyName  string
	jsonLog    bool
	logLevel   string

	cfg    *config.Config
	logger *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "watson",
		Short: "Question the suspects of a country-house murder",
		Long: `watson answers English questions about a murder mystery.

Each character answers from what they know. Questions are parsed into
constituency trees and matched against question shapes such as
"Who killed the earl?" or "Is the actress the murderer?".

Examples:
  watson ask -c policeman "Who killed the earl?"
  watson ask -c actress            # interactive
  watson facts -c butler
  watson check --story manor.yaml
  watson import manor --db watson.db`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (YAML)")
	flags.StringVar(&a.dbPath, "db", "", "SQLite database for stories and memory")
	flags.StringVar(&a.storyName, "stored", "", "Load the named story from the database instead of a file")
	flags.BoolVar(&a.jsonLog, "json-log", false, "Log as JSON")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.String("story", "", "Story file (YAML)")
	flags.String("lexicon", "", "Lexicon file (YAML)")
	flags.String("parses", "", "Parse tree fixtures (YAML)")

	root.AddCommand(
		newAskCmd(a),
		newFactsCmd(a),
		newCheckCmd(a),
		newImportCmd(a),
		newStoriesCmd(a),
		newTranscriptCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the file.
	flags := cmd.Flags()
	for name, dst := range map[string]*string{"story": &cfg.Story, "lexicon": &cfg.Lexicon, "parses": &cfg.Parses} {
		if flags.Changed(name) {
			v, err := flags.GetString(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	if a.dbPath != "" {
		cfg.DB = a.dbPath
	}
	if flags.Changed("json-log") {
		cfg.Log.JSON = a.jsonLog
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = l
	return nil
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	if a.cfg.DB == "" {
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, a.cfg.DB, a.logger.Named("store"))
}

// load reads the configured content and compiles the story. A story named
// with --stored comes from st instead of the story file.
func (a *app) load(ctx context.Context, st store.Store) (*config.Components, *story.World, error) {
	comp, err := a.cfg.Loader().Load()
	if err != nil {
		return nil, nil, err
	}
	if a.storyName != "" {
		if a.cfg.DB == "" {
			return nil, nil, internalerr.Wrap(internalerr.ErrInvalidInput, "--stored needs --db")
		}
		comp.Story, err = st.LoadStory(ctx, a.storyName)
		if err != nil {
			return nil, nil, err
		}
	}
	world, err := story.Compile(comp.Story, comp.Lexicon)
	if err != nil {
		return nil, nil, err
	}
	return comp, world, nil
}

// open builds a Watson over the configured story. The caller closes it.
func (a *app) open(ctx context.Context) (*watson.Watson, error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	comp, world, err := a.load(ctx, st)
	if err != nil {
		st.Close()
		return nil, err
	}

	return a.build(world, comp.Parser, st)
}

// build assembles Watson around an open store, closing the store if that
// fails.
func (a *app) build(world *story.World, parser parse.Parser, st store.Store) (*watson.Watson, error) {
	w, err := watson.New(watson.Options{
		World:          world,
		Parser:         parser,
		Store:          st,
		Logger:         a.logger,
		MemoryCapacity: a.cfg.MemoryCapacity,
	})
	if err != nil {
		st.Close()
		return nil, internalerr.Wrap(err, "build watson")
	}
	return w, nil
}
