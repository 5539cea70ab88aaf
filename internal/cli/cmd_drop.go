package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/cache"
	"github.com/nwtnni/goldfish/internal/journal"
)

func newDropCommand() *Command {
	flags := flag.NewFlagSet("drop", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "drop",
		Short: "Delete the cache file from disk",
		Long: "Remove the cache log file itself. The next add recreates it from\n" +
			"scratch. The .lock file beside it is left in place.",
		Exec: func(app *App, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArg, args[0])
			}

			lock, err := cache.Acquire(app.Config.DataFile, cache.LockTimeout)
			if err != nil {
				return err
			}

			defer lock.Release()

			log, err := journal.Open(app.Config.DataFile)
			if err != nil {
				return err
			}

			// Delete consumes the handle; no Close afterwards.
			return log.Delete()
		},
	}
}
