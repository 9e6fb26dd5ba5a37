package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	lfscheck "github.com/wumingkj/lfscheck/pkg"
)

const version = "1.0.0"

// Exit codes are the machine-readable signal consumed by the build
// scripts driving image generation.
const (
	exitUnchanged  = 0 // digest matches, no regeneration needed
	exitRegenerate = 1 // first run, changed contents, or bad invocation
	exitSaveFailed = 2 // changed but the new digest could not be saved
)

type arguments struct {
	Directory    string
	StateFile    string
	ConfigPath   string
	VerboseLevel int // -1 when not given on the command line
	DebugFlags   string
	ShowHelp     bool
	ShowVersion  bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, err := parseArguments(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		showUsage()
		// A malformed invocation signals "regenerate" as the safe
		// default.
		return exitRegenerate
	}

	if args.ShowHelp {
		showHelp()
		return exitUnchanged
	}
	if args.ShowVersion {
		fmt.Printf("lfscheck %s\n", version)
		return exitUnchanged
	}

	configPath := args.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("LFSCHECK_CONFIG")
	}
	cfg, err := lfscheck.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		return exitRegenerate
	}

	verboseConfig := cfg.GetVerboseConfig()
	if args.VerboseLevel >= 0 {
		lfscheck.SetVerbose(args.VerboseLevel)
	} else {
		lfscheck.SetVerbose(verboseConfig.Level)
	}
	if args.DebugFlags != "" {
		lfscheck.SetDebugFlags(args.DebugFlags)
	} else {
		lfscheck.SetDebugFlags(verboseConfig.Debug)
	}

	checker, err := lfscheck.NewChecker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		return exitRegenerate
	}

	result, err := checker.Check(args.Directory, args.StateFile)

	var notFound *lfscheck.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		return exitRegenerate
	}
	if result == nil {
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		return exitRegenerate
	}

	fmt.Printf("current digest: %s\n", result.Digest)
	if result.Previous != "" {
		fmt.Printf("previous digest: %s\n", result.Previous)
	}

	var saveFailed *lfscheck.StateWriteError
	if errors.As(err, &saveFailed) {
		if result.Outcome == lfscheck.OutcomeFirstRun {
			fmt.Println("no previous digest found, first run")
		} else {
			fmt.Println("filesystem contents have changed")
		}
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		return exitSaveFailed
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lfscheck: %v\n", err)
		return exitRegenerate
	}

	switch result.Outcome {
	case lfscheck.OutcomeFirstRun:
		fmt.Println("no previous digest found, first run")
		fmt.Println("saved new digest")
		return exitRegenerate
	case lfscheck.OutcomeUnchanged:
		fmt.Println("filesystem contents unchanged")
		return exitUnchanged
	default:
		fmt.Println("filesystem contents have changed")
		fmt.Println("updated stored digest")
		return exitRegenerate
	}
}

func parseArguments(argv []string) (*arguments, error) {
	args := &arguments{VerboseLevel: -1}

	var positional []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "--help", "-h", "help":
			args.ShowHelp = true
			return args, nil
		case "--version":
			args.ShowVersion = true
			return args, nil
		case "--config":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--config requires a path argument")
			}
			i++
			args.ConfigPath = argv[i]
		case "--verbose", "-v":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--verbose requires a level argument")
			}
			i++
			level, err := strconv.Atoi(argv[i])
			if err != nil || level < 0 {
				return nil, fmt.Errorf("invalid verbose level: %s", argv[i])
			}
			args.VerboseLevel = level
		case "--debug":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--debug requires a flag list argument")
			}
			i++
			args.DebugFlags = argv[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown option: %s", arg)
			}
			positional = append(positional, arg)
		}
	}

	if len(positional) != 2 {
		return nil, fmt.Errorf("expected <directory> <state-file>, got %d arguments", len(positional))
	}
	args.Directory = positional[0]
	args.StateFile = positional[1]
	return args, nil
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: lfscheck [options] <directory> <state-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'lfscheck --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("lfscheck - detect littlefs directory changes to skip image rebuilds\n\n")
	fmt.Printf("Usage: lfscheck [options] <directory> <state-file>\n\n")

	fmt.Printf("ARGUMENTS:\n")
	fmt.Printf("  directory         Directory tree to fingerprint\n")
	fmt.Printf("  state-file        JSON file holding the previous digest\n\n")

	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  --config PATH     INI config file (also: LFSCHECK_CONFIG env var)\n")
	fmt.Printf("  --verbose N, -v N Verbosity level (0-3)\n")
	fmt.Printf("  --debug FLAGS     Comma-separated debug channels (walk,state)\n")
	fmt.Printf("  --version         Print version and exit\n")
	fmt.Printf("  --help, -h        Show this help\n\n")

	fmt.Printf("EXIT CODES:\n")
	fmt.Printf("  0                 Contents unchanged, image rebuild not needed\n")
	fmt.Printf("  1                 Rebuild needed (first run, changed, or bad invocation)\n")
	fmt.Printf("  2                 Contents changed but the new digest could not be saved\n")
}
