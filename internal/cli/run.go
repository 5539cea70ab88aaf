package cli

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/cache"
	"github.com/nwtnni/goldfish/internal/config"
	"github.com/nwtnni/goldfish/internal/journal"
	"github.com/nwtnni/goldfish/internal/pathutil"
)

// App carries the per-invocation context handed to every command.
type App struct {
	IO      *IO
	Stdin   io.Reader
	Config  config.Config
	Sources config.Sources
	Env     map[string]string
}

// withCache runs fn against the configured cache, holding the advisory
// invocation lock for the whole open-operate-close cycle.
func (a *App) withCache(fn func(c *cache.Cache) error) error {
	lock, err := cache.Acquire(a.Config.DataFile, cache.LockTimeout)
	if err != nil {
		return err
	}

	defer lock.Release()

	log, err := journal.Open(a.Config.DataFile)
	if err != nil {
		return err
	}

	defer func() { _ = log.Close() }()

	return fn(cache.New(log, a.Config.Threshold))
}

// home returns the canonical home directory for tilde abbreviation, or
// empty when there is none.
func (a *App) home() string {
	home := config.Home(a.Env)
	if home == "" {
		return ""
	}

	if canon, err := pathutil.Canonicalize(home); err == nil {
		return canon
	}

	return home
}

func commands() []*Command {
	return []*Command{
		newAddCommand(),
		newListCommand(),
		newClearCommand(),
		newDropCommand(),
		newPickCommand(),
		newInitCommand(),
		newPrintConfigCommand(),
	}
}

type globalOptions struct {
	configPath string
	dataFile   string
	retain     int
	threshold  int64
}

func newGlobalFlags(opts *globalOptions) *flag.FlagSet {
	flags := flag.NewFlagSet("goldfish", flag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(io.Discard)

	flags.StringVar(&opts.configPath, "config", "", "Config file to load instead of the default")
	flags.StringVar(&opts.dataFile, "data-file", "", "Cache log file location")
	flags.IntVar(&opts.retain, "retain", config.DefaultRetain, "Distinct entries to keep")
	flags.Int64Var(&opts.threshold, "threshold", config.DefaultThreshold, "Stale bytes tolerated before a query compacts the log")

	return flags
}

// Run is the main entry point. Returns the process exit code.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	var opts globalOptions

	globals := newGlobalFlags(&opts)

	if err := globals.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(o)
			return 0
		}

		o.ErrPrintln("error:", err)
		printUsage(o)

		return 1
	}

	rest := globals.Args()
	if len(rest) == 0 {
		printUsage(o)
		return 0
	}

	name := rest[0]
	if name == "help" {
		printUsage(o)
		return 0
	}

	var cmd *Command

	for _, candidate := range commands() {
		if candidate.Name() == name {
			cmd = candidate
			break
		}
	}

	if cmd == nil {
		o.ErrPrintln("error: unknown command:", name)
		printUsage(o)

		return 1
	}

	cfg, sources, err := config.Load(opts.configPath, env)
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	// CLI flags win over file and environment.
	if globals.Changed("data-file") {
		cfg.DataFile = opts.dataFile
	}

	if globals.Changed("retain") {
		cfg.Retain = opts.retain
	}

	if globals.Changed("threshold") {
		cfg.Threshold = opts.threshold
	}

	if err := config.Validate(cfg); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	app := &App{
		IO:      o,
		Stdin:   stdin,
		Config:  cfg,
		Sources: sources,
		Env:     env,
	}

	return cmd.Run(app, rest[1:])
}

func printUsage(o *IO) {
	o.Println("Usage: goldfish [global flags] <command> [flags]")
	o.Println()
	o.Println("Persistent recency cache for filesystem paths.")
	o.Println()
	o.Println("Commands:")

	for _, cmd := range commands() {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("Global flags:")

	var opts globalOptions

	o.Printf("%s", newGlobalFlags(&opts).FlagUsages())
}
