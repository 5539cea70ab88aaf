package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/cache"
)

func newPickCommand() *Command {
	flags := flag.NewFlagSet("pick", flag.ContinueOnError)
	limit := flags.IntP("limit", "n", 0, "Entries offered for completion (default: the retain setting)")

	return &Command{
		Flags: flags,
		Usage: "pick [flags]",
		Short: "Interactively pick a cached path",
		Long: "Prompt for a path with tab completion over the most recently used\n" +
			"entries and print the choice to stdout, for use in command\n" +
			"substitution: cd \"$(goldfish pick)\".",
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

			if len(entries) == 0 {
				return nil
			}

			// The lock is already released: the prompt can sit open for a
			// while and must not block other invocations.
			prompt := liner.NewLiner()
			defer func() { _ = prompt.Close() }()

			prompt.SetCtrlCAborts(true)
			prompt.SetCompleter(func(prefix string) []string {
				var matches []string

				for _, entry := range entries {
					if strings.HasPrefix(entry, prefix) {
						matches = append(matches, entry)
					}
				}

				return matches
			})

			choice, err := prompt.Prompt("goldfish> ")
			if err != nil {
				if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
					return nil
				}

				return err
			}

			if choice != "" {
				app.IO.Println(choice)
			}

			return nil
		},
	}
}
