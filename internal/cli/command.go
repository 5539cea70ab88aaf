package cli

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one subcommand with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "goldfish" in help.
	// Includes the command name and arguments/flags.
	// Examples: "add <path>...", "list [flags]", "clear [--keep N]"
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// Exec runs the command after flags are parsed.
	Exec func(app *App, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "goldfish <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: goldfish", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command. Returns the exit code.
// Error printing happens here so output ordering stays consistent.
func (c *Command) Run(app *App, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag's own output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(app.IO)
			return 0
		}

		app.IO.ErrPrintln("error:", err)
		app.IO.ErrPrintln()
		c.PrintHelp(app.IO)

		return 1
	}

	if err := c.Exec(app, c.Flags.Args()); err != nil {
		app.IO.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
