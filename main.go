package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/goforj/godump"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/cli"
	"github.com/navionguy/tinybasic/settings"
	"github.com/navionguy/tinybasic/terminal"
)

// config is everything the command line asked for
type config struct {
	opts   settings.Options
	output string
	dump   bool
	serve  bool
	listen string
	dir    string
	file   string
}

const usage = "Usage: tinybasic [OPTIONS] INPUT-FILE\n       tinybasic -serve [-listen addr] [-dir programs]"

// parseArgs reads the flags, an options file named by -config
// is applied first and the flags win over it
func parseArgs(args []string, errOut io.Writer) (*config, error) {
	fs := flag.NewFlagSet("tinybasic", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintln(errOut, usage)
		fs.PrintDefaults()
	}

	var lines, limit, comments, output string
	fs.StringVar(&lines, "line-numbers", "", "line number policy: optional, implied or mandatory")
	fs.StringVar(&lines, "n", "", "shorthand for -line-numbers")
	fs.StringVar(&limit, "line-limit", "", "largest line label allowed")
	fs.StringVar(&limit, "N", "", "shorthand for -line-limit")
	fs.StringVar(&comments, "comments", "", "REM lines: enabled or disabled")
	fs.StringVar(&comments, "o", "", "shorthand for -comments")
	fs.StringVar(&output, "output", cli.OutputRun, "run the program or write a listing: run or lst")
	fs.StringVar(&output, "O", cli.OutputRun, "shorthand for -output")

	cfgFile := fs.String("config", "", "yaml options file")
	cfg := &config{}
	fs.BoolVar(&cfg.dump, "dump", false, "dump the parsed program before acting on it")
	fs.BoolVar(&cfg.serve, "serve", false, "run the http program service")
	fs.StringVar(&cfg.listen, "listen", ":8080", "listen address")
	fs.StringVar(&cfg.dir, "dir", ".", "directory of programs to serve")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.opts = settings.Default()
	if len(*cfgFile) > 0 {
		opts, err := settings.Load(*cfgFile)
		if err != nil {
			return nil, err
		}
		cfg.opts = opts
	}

	if len(lines) > 0 {
		m, err := settings.ParseMode(lines)
		if err != nil {
			return nil, err
		}
		cfg.opts.LineNumbers = m
	}

	if len(limit) > 0 {
		lim, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("bad line limit %q", limit)
		}
		if err := settings.CheckLimit(lim); err != nil {
			return nil, err
		}
		cfg.opts.LineLimit = lim
	}

	if len(comments) > 0 {
		c, err := settings.ParseComments(comments)
		if err != nil {
			return nil, err
		}
		cfg.opts.Comments = c
	}

	out, err := cli.ParseOutput(output)
	if err != nil {
		return nil, fmt.Errorf("unknown output %q: %w", output, err)
	}
	cfg.output = out

	switch {
	case fs.NArg() > 1:
		return nil, berrors.New(berrors.BadCommandLine, 0, 0)
	case fs.NArg() == 1:
		cfg.file = fs.Arg(0)
	}

	return cfg, nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Printf("tinybasic: %s", err)
		os.Exit(berrors.BadCommandLine)
	}

	if cfg.serve {
		log.Printf("serving programs from %q", cfg.dir)
		log.Printf("listening on %q...", cfg.listen)
		log.Fatal(serve(cfg))
	}

	if len(cfg.file) == 0 {
		fmt.Println(usage)
		return
	}

	if cfg.dump {
		prog, err := cli.LoadFile(cfg.file, cfg.opts)
		if err == nil {
			godump.Dump(prog)
		}
	}

	trm := terminal.NewStdio()
	rc := cli.Start(cfg.file, cfg.opts, cfg.output, trm)
	trm.Close()

	os.Exit(rc)
}
