package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

func newPrintConfigCommand() *Command {
	flags := flag.NewFlagSet("print-config", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "print-config",
		Short: "Show the resolved configuration",
		Exec: func(app *App, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArg, args[0])
			}

			app.IO.Printf("data_file  %s\n", app.Config.DataFile)
			app.IO.Printf("retain     %d\n", app.Config.Retain)
			app.IO.Printf("threshold  %d\n", app.Config.Threshold)
			app.IO.Printf("tilde      %t\n", app.Config.Tilde)

			switch {
			case app.Sources.Loaded:
				app.IO.Printf("config     %s (loaded)\n", app.Sources.File)
			case app.Sources.File != "":
				app.IO.Printf("config     %s (not found)\n", app.Sources.File)
			default:
				app.IO.Printf("config     (none)\n")
			}

			return nil
		},
	}
}
