package cli

import (
	"fmt"
	"slices"

	"github.com/kballard/go-shellquote"
	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/cache"
	"github.com/nwtnni/goldfish/internal/pathutil"
)

func newListCommand() *Command {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	limit := flags.IntP("limit", "n", 0, "Entries to report (default: the retain setting)")
	chrono := flags.Bool("chrono", false, "Print oldest first instead of most recent first")
	noTilde := flags.Bool("no-tilde", false, "Never abbreviate $HOME as ~")
	quote := flags.Bool("quote", false, "Shell-quote each entry")
	nullSep := flags.Bool("null", false, "Terminate entries with NUL instead of newline (for xargs -0)")

	return &Command{
		Flags: flags,
		Usage: "list [flags]",
		Short: "Print the most recently used distinct paths",
		Long: "Walk the cache log backward and print the most recently touched\n" +
			"distinct paths, one per line, newest first. The walk reads only as\n" +
			"much of the file as the answer needs, and compacts the log when too\n" +
			"many stale bytes pile up behind it.",
		Exec: func(app *App, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArg, args[0])
			}

			k := app.Config.Retain
			if *limit > 0 {
				k = *limit
			}

			var entries []string

			err := app.withCache(func(c *cache.Cache) error {
				var walkErr error
				entries, walkErr = c.MostRecent(k)
				return walkErr
			})
			if err != nil {
				return err
			}

			if *chrono {
				slices.Reverse(entries)
			}

			home := ""
			if app.Config.Tilde && !*noTilde {
				home = app.home()
			}

			for _, entry := range entries {
				line := pathutil.Abbreviate(home, entry)

				if *quote {
					line = shellquote.Join(line)
				}

				if *nullSep {
					app.IO.Printf("%s\x00", line)
				} else {
					app.IO.Println(line)
				}
			}

			return nil
		},
	}
}
