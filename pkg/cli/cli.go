package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmdmdm-nz/lladdrd/pkg/version"
)

// Config holds the application configuration from CLI flags
type Config struct {
	Port     int
	Host     string
	LogLevel string

	// Command is the subcommand to run: get, set, monitor or serve.
	Command string
	// Args are the positional arguments after the subcommand.
	Args []string
}

const usage = `Usage: lladdrd [flags] <command> [args]

Commands:
  get <interface>            Print the interface's link-level address
  set <interface> <lladdr>   Change the interface's link-level address
  monitor                    Log link-layer membership changes
  serve                      Run the HTTP/websocket API service

Flags:
`

// ParseFlags parses command line arguments and returns a Config
func ParseFlags() *Config {
	cfg := &Config{}

	flag.IntVar(&cfg.Port, "port", 60106, "Port to listen on in serve mode")
	flag.StringVar(&cfg.Host, "host", "127.0.0.1", "Host to bind to in serve mode")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("lladdrd version %s (commit: %s, built at: %s)\n",
			version.Version,
			version.CommitHash,
			version.BuildTime)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.Command = args[0]
	cfg.Args = args[1:]

	return cfg
}

// String returns a string representation of the Config
func (c *Config) String() string {
	return fmt.Sprintf("Host: %s, Port: %d, LogLevel: %s, Command: %s", c.Host, c.Port, c.LogLevel, c.Command)
}
