package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/navionguy/tinybasic/cli"
	"github.com/navionguy/tinybasic/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseArgs(t *testing.T) {
	tests := []struct {
		args []string
		mode settings.LineNumberMode
		lim  int
		com  bool
		out  string
		file string
	}{
		{args: []string{"prog.bas"}, mode: settings.Optional, lim: 32767, com: true, out: cli.OutputRun, file: "prog.bas"},
		{args: []string{"-n", "imp", "prog.bas"}, mode: settings.Implied, lim: 32767, com: true, out: cli.OutputRun, file: "prog.bas"},
		{args: []string{"-line-numbers=mandatory", "-N", "999", "x.bas"}, mode: settings.Mandatory, lim: 999, com: true, out: cli.OutputRun, file: "x.bas"},
		{args: []string{"-comments=dis", "-O", "lst", "y.bas"}, mode: settings.Optional, lim: 32767, com: false, out: cli.OutputLst, file: "y.bas"},
		{args: []string{"-o", "enabled", "-output=run"}, mode: settings.Optional, lim: 32767, com: true, out: cli.OutputRun},
	}

	for _, tt := range tests {
		var errOut bytes.Buffer
		cfg, err := parseArgs(tt.args, &errOut)

		require.NoErrorf(t, err, "args %v", tt.args)
		assert.Equal(t, tt.mode, cfg.opts.LineNumbers)
		assert.Equal(t, tt.lim, cfg.opts.LineLimit)
		assert.Equal(t, tt.com, cfg.opts.Comments)
		assert.Equal(t, tt.out, cfg.output)
		assert.Equal(t, tt.file, cfg.file)
	}
}

func Test_ParseArgsErrors(t *testing.T) {
	tests := [][]string{
		{"-n", "sometimes", "prog.bas"},
		{"-N", "lots", "prog.bas"},
		{"-N", "0", "prog.bas"},
		{"-comments=perhaps"},
		{"-O", "c", "prog.bas"},
		{"one.bas", "two.bas"},
		{"-config", "/no/such/options.yaml"},
		{"-bogus"},
	}

	for _, args := range tests {
		var errOut bytes.Buffer
		_, err := parseArgs(args, &errOut)
		assert.Errorf(t, err, "args %v should fail", args)
	}
}

func Test_ParseArgsHelp(t *testing.T) {
	var errOut bytes.Buffer
	_, err := parseArgs([]string{"-h"}, &errOut)

	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, errOut.String(), "Usage: tinybasic")
}

func Test_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("line_numbers: implied\nline_limit: 500\ncomments: disabled\n"), 0o644))

	var errOut bytes.Buffer
	cfg, err := parseArgs([]string{"-config", path, "-N", "600", "p.bas"}, &errOut)

	require.NoError(t, err)
	assert.Equal(t, settings.Implied, cfg.opts.LineNumbers)
	assert.Equal(t, 600, cfg.opts.LineLimit)
	assert.False(t, cfg.opts.Comments)
}

func Test_ServeFlags(t *testing.T) {
	var errOut bytes.Buffer
	cfg, err := parseArgs([]string{"-serve", "-listen", ":9999", "-dir", "/tmp/progs"}, &errOut)

	require.NoError(t, err)
	assert.True(t, cfg.serve)
	assert.Equal(t, ":9999", cfg.listen)
	assert.Equal(t, "/tmp/progs", cfg.dir)
	assert.Equal(t, "", cfg.file)
}
