package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usageText = `murmur is a terminal chat client for Signal, speaking through a
signal-cli compatible binary.

Usage:
  murmur [command] [flags]

Commands:
  run      run the client (default when no command is given)
  config   print the effective configuration
  version  print the version
  help     show help

Run flags:
  -account <number>    signal account (overrides config)
  -data-dir <path>     data directory (default ~/.murmur)
  -log-level <level>   debug, info, warn, or error

Examples:
  murmur
  murmur run -account +15550001111
  murmur config
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]

	cmd := "run"
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage()
			return
		case "run", "config", "version":
			cmd = args[0]
			args = args[1:]
		default:
			if args[0][0] != '-' {
				fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
				printUsage()
				os.Exit(2)
			}
		}
	}

	var err error
	switch cmd {
	case "run":
		err = runClient(args)
	case "config":
		err = runConfig(args)
	case "version":
		fmt.Println("murmur " + version)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "murmur %s: %v\n", cmd, err)
		os.Exit(1)
	}
}
