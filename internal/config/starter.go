package config

// Starter is the commented config file written by "goldfish init".
// HuJSON, so the comments survive parsing.
const Starter = `// goldfish configuration.
// Comments and trailing commas are allowed (HuJSON).
// Every key is optional; the commented values below are the defaults.
{
	// Absolute path of the cache log file.
	// "data_file": "$XDG_DATA_HOME/goldfish/history",

	// How many distinct entries "goldfish list" reports by default.
	// "retain": 100,

	// Rewrite the log once a query walks past this many stale bytes.
	// "threshold": 8192,

	// Abbreviate paths under $HOME with a leading ~ on output.
	// "tilde": true,
}
`
