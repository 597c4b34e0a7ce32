// Command mandalang runs an interactive Mandalang session: a line-oriented
// REPL that accepts `let`/`type` definitions and bare expressions, printing
// each result and binding bare expressions to `_`.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/ortfero/mandalang/internal/config"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/pkg/mandalang"
)

func main() {
	configPath := flag.String("config", "", "path to a mandalang.yaml config file")
	dbPath := flag.String("db", "", "path to a session database; when set, the session is loaded at start and saved at exit")
	session := flag.String("session", "default", "session name used with -db")
	testMode := flag.Bool("test", false, "run in test mode (suppresses the prompt and banner)")
	flag.Parse()

	config.IsTestMode = *testMode

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[error] %s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	engine, err := mandalang.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[error] %s\n", err)
		os.Exit(1)
	}

	effectiveDBPath := *dbPath
	if effectiveDBPath == "" {
		effectiveDBPath = cfg.HistoryFile
	}

	if effectiveDBPath != "" {
		if _, err := engine.LoadSession(effectiveDBPath, *session); err != nil {
			fmt.Fprintf(os.Stderr, "[error] loading session: %s\n", err)
			os.Exit(1)
		}
	}

	interactive := !config.IsTestMode && isatty.IsTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Println("Mandalang interactive session")
	}

	if err := run(os.Stdin, os.Stdout, engine, cfg, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "[error] %s\n", err)
		os.Exit(1)
	}

	if effectiveDBPath != "" {
		if err := engine.SaveSession(effectiveDBPath, *session); err != nil {
			fmt.Fprintf(os.Stderr, "[error] saving session: %s\n", err)
			os.Exit(1)
		}
	}
}

func run(in *os.File, out *os.File, engine *mandalang.Engine, cfg *config.Config, interactive bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, config.MaxREPLLineLength), config.MaxREPLLineLength)

	for {
		if interactive {
			fmt.Fprint(out, cfg.PromptPrefix)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			return nil
		}

		result, err := engine.EvaluateDefinitionOrExpression(line)
		if err != nil {
			fmt.Fprintf(out, "[error] %s\n", err)
			continue
		}
		if result.IsSym {
			fmt.Fprintln(out, result.Symbol)
			continue
		}
		printResult(out, engine, result.Value, cfg)
	}
}

func printResult(out *os.File, engine *mandalang.Engine, value mdir.Value, cfg *config.Config) {
	engine.Redefine("_", value)
	if !cfg.EchoResults {
		return
	}
	fmt.Fprintln(out, value)
}
