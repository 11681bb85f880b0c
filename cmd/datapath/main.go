package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "datapath: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse subcommand from os.Args
	subcmd := ""
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "ingest":
		return cmdIngest(args)
	case "query":
		return cmdQuery(args)
	case "exists":
		return cmdExists(args)
	case "parse":
		return cmdParse(args)
	case "status":
		return cmdStatus(args)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: datapath [ingest|query|exists|parse|status]", subcmd)
	}
}
