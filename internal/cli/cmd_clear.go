package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/cache"
)

func newClearCommand() *Command {
	flags := flag.NewFlagSet("clear", flag.ContinueOnError)
	keep := flags.IntP("keep", "k", 0, "Keep the N most recent distinct entries")

	return &Command{
		Flags: flags,
		Usage: "clear [--keep N]",
		Short: "Erase the cache, or everything but the newest entries",
		Long: "Truncate the cache log. With --keep the N most recently touched\n" +
			"distinct entries survive, rewritten in chronological order.",
		Exec: func(app *App, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArg, args[0])
			}

			return app.withCache(func(c *cache.Cache) error {
				return c.Prune(*keep)
			})
		},
	}
}
