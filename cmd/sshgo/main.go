package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sshgo/pkg/browser"
	"sshgo/pkg/debug"
	"sshgo/pkg/hosttree"
	"sshgo/pkg/manager"
)

// app holds the parsed flags and the pieces tests replace.
type app struct {
	hostsPath       string
	settingsPath    string
	query           string
	list            bool
	jsonOut         bool
	dryRun          bool
	noExec          bool
	printConfigPath bool

	isTerminal func() bool
	runTUI     func(*browser.Session, manager.UIOptions) (*browser.LaunchRequest, error)
	lookPath   func(string) (string, error)
	beforeExec func()
	execOrRun  func(argv []string, replace bool) error
}

func newApp() *app {
	return &app{
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		runTUI:   manager.RunTUI,
		lookPath: exec.LookPath,
		beforeExec: func() {
			manager.RestoreTerminalForExec()
			flushTTYInput()
		},
		execOrRun: execOrRun,
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sshgo [flags]",
		Short:         "Browse a tree of hosts and connect to one",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Browse ~/.ssh_hosts
  sshgo

  # Another hosts file, starting with a search
  sshgo -c ~/work/hosts -q db

  # Print the tree
  sshgo --list
  sshgo --list --json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&a.hostsPath, "config", "c", "", "hosts file to browse (default ~/.ssh_hosts)")
	f.StringVar(&a.settingsPath, "settings", "", "settings YAML (default: $SSHGO_SETTINGS or ~/.config/sshgo/config.yaml)")
	f.StringVarP(&a.query, "query", "q", "", "start in search mode with this keyword")
	f.BoolVar(&a.list, "list", false, "print the hosts tree and exit")
	f.BoolVar(&a.jsonOut, "json", false, "with --list, print the tree as JSON")
	f.BoolVar(&a.dryRun, "dry-run", false, "print the client command for the selected host instead of running it")
	f.BoolVar(&a.noExec, "no-exec", false, "run the client as a child process instead of replacing sshgo")
	f.BoolVar(&a.printConfigPath, "print-config-path", false, "print the resolved hosts file and settings paths and exit")
	return cmd
}

func (a *app) run(out io.Writer) error {
	if debug.EnvEnabled() {
		if err := debug.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "sshgo: debug log disabled: %v\n", err)
		}
		defer debug.Close()
	}

	cfg, settingsPath, err := manager.LoadConfig(a.settingsPath)
	if err != nil {
		return err
	}
	hostsPath := manager.ResolveHostsPath(a.hostsPath, cfg)
	debug.Log("hosts=%s settings=%s", hostsPath, settingsPath)

	if a.printConfigPath {
		if settingsPath == "" {
			settingsPath = "(defaults)"
		}
		fmt.Fprintf(out, "hosts: %s\nsettings: %s\n", hostsPath, settingsPath)
		return nil
	}

	start := time.Now()
	tree, err := hosttree.ParseFile(hostsPath, cfg.ParseOptions())
	if err != nil {
		return err
	}
	debug.LogTiming("parse", time.Since(start))

	if a.list {
		if a.jsonOut {
			return manager.WriteTreeJSON(out, tree, hostsPath)
		}
		return manager.WriteTree(out, tree)
	}

	if !a.isTerminal() {
		return errors.New("not a terminal (use --list to print the hosts tree)")
	}

	theme := manager.LoadTheme(cfg, os.Getenv("SSHGO_THEME"))
	req, err := a.runTUI(browser.NewSession(tree), manager.UIOptions{
		InitialQuery: a.query,
		ShowComments: cfg.ShowComments,
		Theme:        theme,
	})
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}

	launcher := manager.NewLauncher(cfg)
	launcher.LookPath = a.lookPath
	argv, err := launcher.Command(req)
	if err != nil {
		return err
	}
	if a.dryRun {
		fmt.Fprintln(out, shellQuoteCmd(argv))
		return nil
	}

	a.beforeExec()
	debug.Log("exec %v (replace=%v)", argv, !a.noExec)
	return a.execOrRun(argv, !a.noExec)
}

func main() {
	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			fmt.Fprintf(os.Stderr, "sshgo: %v\n", err)
		}
		os.Exit(exitCodeFromErr(err))
	}
}
