package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/nwtnni/goldfish/internal/config"
)

func newInitCommand() *Command {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "init",
		Short: "Write a starter config file",
		Long: "Write a commented starter config file to the default location\n" +
			"($XDG_CONFIG_HOME/goldfish/config.json). Refuses to overwrite an\n" +
			"existing file.",
		Exec: func(app *App, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArg, args[0])
			}

			path := config.DefaultPath(app.Env)
			if path == "" {
				return errNoConfigPath
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%w: %s", errConfigExists, path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			if err := atomic.WriteFile(path, strings.NewReader(config.Starter)); err != nil {
				return fmt.Errorf("write config file %q: %w", path, err)
			}

			app.IO.Println("wrote", path)

			return nil
		},
	}
}
