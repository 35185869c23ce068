package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tuannm99/tinysql/internal"
	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/shell"
	"github.com/tuannm99/tinysql/internal/sql/executor"
	"github.com/tuannm99/tinysql/sqlclient"
)

const continuationPrompt = "...> "

func main() {
	var (
		cfgPath    = flag.String("config", "", "YAML config file")
		addr       = flag.String("addr", "", "server address; empty runs an in-process database")
		timeout    = flag.Duration("timeout", 3*time.Second, "dial timeout")
		oneShotSQL = flag.String("c", "", "execute one batch and exit")
	)
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger())

	var (
		runner  shell.Runner
		catalog shell.Catalog
	)
	if *addr == "" {
		db := engine.NewDatabase()
		defer func() { _ = db.Close() }()
		runner = executor.NewExecutor(db)
		catalog = db
	} else {
		cli, err := sqlclient.Dial(*addr, *timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dial: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = cli.Close() }()
		runner = cli
		slog.Info("client: connected", "addr", *addr)
	}

	// one-shot mode
	if strings.TrimSpace(*oneShotSQL) != "" {
		results, err := runner.ExecSQL(*oneShotSQL)
		if out := shell.RenderResults(results); out != "" {
			fmt.Println(out)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, shell.RenderError(err))
			os.Exit(1)
		}
		return
	}

	hist := shell.NewHistory(cfg.Shell.HistoryFile)
	if err := hist.Load(cfg.Shell.HistoryMax); err != nil {
		slog.Warn("client: load history", "path", cfg.Shell.HistoryFile, "err", err)
	}

	sess := shell.NewSession(runner, shell.Options{
		Catalog:   catalog,
		History:   hist,
		Multiline: cfg.Shell.Multiline,
	})

	if err := repl(sess, hist, cfg.Shell.Prompt); err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
}

func repl(sess *shell.Session, hist *shell.History, prompt string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	// preload so arrow-up works immediately
	for _, line := range hist.Lines() {
		_ = rl.SaveHistory(line)
	}

	fmt.Println(`type ".help" for help`)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C drops a pending statement
			if sess.Pending() {
				sess.Reset()
				rl.SetPrompt(prompt)
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		before := len(hist.Lines())
		out, ctl := sess.Handle(line)
		if lines := hist.Lines(); len(lines) > before {
			_ = rl.SaveHistory(lines[len(lines)-1])
		}

		if out != "" {
			fmt.Println(out)
		}
		if ctl == shell.Exit {
			return nil
		}

		if sess.Pending() {
			rl.SetPrompt(continuationPrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}
