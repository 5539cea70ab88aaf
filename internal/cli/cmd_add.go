package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/cache"
	"github.com/nwtnni/goldfish/internal/pathutil"
)

func newAddCommand() *Command {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	typeFilter := flags.String("type", string(pathutil.ModeAny), "Accept only entries of this type (any, file or dir)")

	return &Command{
		Flags: flags,
		Usage: "add <path>...",
		Short: "Touch paths in the cache",
		Long: "Canonicalize each path and append it to the cache log, making it the\n" +
			"most recent entry. Paths that do not exist, or do not match --type,\n" +
			"are silently dropped; feeding every visited path into add is meant to\n" +
			"be safe from shell hooks.",
		Exec: func(app *App, args []string) error {
			mode, err := pathutil.ParseMode(*typeFilter)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return errPathRequired
			}

			var accepted []string

			for _, arg := range args {
				canon, canonErr := pathutil.Canonicalize(arg)
				if canonErr != nil {
					continue // dropped, not an error
				}

				if !pathutil.Accepts(canon, mode) {
					continue
				}

				accepted = append(accepted, canon)
			}

			if len(accepted) == 0 {
				return nil
			}

			return app.withCache(func(c *cache.Cache) error {
				return c.Touch(accepted...)
			})
		},
	}
}
