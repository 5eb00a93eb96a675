// Command recordstore-cli is a thin operator shell around pkg/recordstore:
// get, page, insert and delete subcommands against a single data directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/arjunvarma/recordstore/internal/engine"
	"github.com/arjunvarma/recordstore/pkg/options"
	"github.com/arjunvarma/recordstore/pkg/recordstore"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := flag.NewFlagSet("recordstore-cli", flag.ContinueOnError)
	dataDir := root.String("data-dir", options.DefaultDataDir, "Directory holding the log and snapshot files")
	configPath := root.String("config", os.Getenv("RECORDSTORE_CONFIG"), "Path to a recordstore.yaml config file (env RECORDSTORE_CONFIG)")
	root.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: recordstore-cli [--config FILE] [--data-dir DIR] <get|page|insert|delete> ...")
		root.PrintDefaults()
	}
	// Stop at the subcommand name so its own flags (e.g. insert --name)
	// reach the subcommand's FlagSet instead of the root one.
	root.SetInterspersed(false)

	if len(args) == 0 {
		root.Usage()
		return 1
	}

	if err := root.Parse(args); err != nil {
		return 1
	}

	rest := root.Args()
	if len(rest) == 0 {
		root.Usage()
		return 1
	}

	var optFuncs []options.OptionFunc
	if *configPath != "" {
		cfg := options.NewDefaultOptions()
		if err := options.LoadYAML(*configPath, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		optFuncs = append(optFuncs, options.WithOptions(cfg))
	}
	if root.Changed("data-dir") {
		optFuncs = append(optFuncs, options.WithDataDir(*dataDir))
	}

	store, err := recordstore.NewInstance("recordstore-cli", optFuncs...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer store.Close()

	switch rest[0] {
	case "get":
		return cmdGet(store, rest[1:])
	case "page":
		return cmdPage(store, rest[1:])
	case "insert":
		return cmdInsert(store, rest[1:])
	case "delete":
		return cmdDelete(store, rest[1:])
	default:
		fmt.Fprintf(os.Stderr, "error: unknown subcommand %q\n", rest[0])
		return 1
	}
}

func cmdGet(store *recordstore.Instance, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: recordstore-cli get <key>")
		return 1
	}

	result, err := store.Get(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	printJSON(result)
	return 0
}

func cmdPage(store *recordstore.Instance, args []string) int {
	flagSet := flag.NewFlagSet("page", flag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return 1
	}

	n := 1
	if flagSet.NArg() > 0 {
		if _, err := fmt.Sscanf(flagSet.Arg(0), "%d", &n); err != nil {
			fmt.Fprintln(os.Stderr, "usage: recordstore-cli page <n>")
			return 1
		}
	}

	result, err := store.Page(n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	printJSON(result)
	return 0
}

func cmdInsert(store *recordstore.Instance, args []string) int {
	flagSet := flag.NewFlagSet("insert", flag.ContinueOnError)
	name := flagSet.String("name", "", "Record name field")
	email := flagSet.String("email", "", "Record email field")
	if err := flagSet.Parse(args); err != nil {
		return 1
	}

	result, err := store.Insert(engine.InsertRequest{Name: *name, Email: *email})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	printJSON(result)
	return 0
}

func cmdDelete(store *recordstore.Instance, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: recordstore-cli delete <key>")
		return 1
	}

	result, err := store.Delete(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	printJSON(result)
	return 0
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
