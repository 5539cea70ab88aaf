package cli

import "errors"

var (
	errPathRequired  = errors.New("at least one path is required")
	errUnexpectedArg = errors.New("unexpected argument")
	errConfigExists  = errors.New("config file already exists")
	errNoConfigPath  = errors.New("cannot determine config file location (set $XDG_CONFIG_HOME or $HOME)")
)
