package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/snipshot/internal/config"
	"github.com/example/snipshot/internal/notify"
	"github.com/example/snipshot/internal/theme"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// verbose enables session traces; set by -v.
var verbose bool

func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	out         io.Writer
	configPath  string
	themeName   string
	saveAlerts  bool
	copyAlerts  bool
	config      *config.Config
	loader      *config.Loader
	notifier    *notify.Notifier
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) *root {
	child := *r
	child.fs = nil
	child.program = strings.TrimSpace(r.program + " " + name)
	return &child
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("snipshot", flag.ContinueOnError),
		program: "snipshot",
		out:     os.Stdout,
	}
	r.fs.StringVar(&r.configPath, "config", os.Getenv(config.EnvConfig), "path to the RC configuration file")
	r.fs.StringVar(&r.themeName, "theme", "", "overlay colour theme (default, dark, high_contrast or a [theme.name] section)")
	r.fs.BoolVar(&verbose, "v", false, "log monitor, window and capture details")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving a snip")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying a snip")
	r.fs.Usage = usageFunc(r)
	return r
}

// setup loads the configuration and theme once flags are parsed.
// Precedence: CLI > Env > Config > Default.
func (r *root) setup() {
	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	r.notifier = notify.New(notify.LoadPreferences())
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	if r.themeName != "" {
		cfg.Theme = r.themeName
	}
	t, err := cfg.ResolveTheme(theme.NewLoader())
	if err != nil {
		if cfg.Theme != "" && cfg.Theme != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", cfg.Theme, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	r.setup()
	defer r.notifier.Close()

	cmdName := "snip"
	var subArgs []string
	if r.fs.NArg() > 0 {
		cmdName = r.fs.Arg(0)
		subArgs = r.fs.Args()[1:]
	}

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "snip":
		cmd, err = parseSnipCmd(subArgs, r)
	case "file":
		cmd, err = parseFileCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "windows":
		cmd, err = parseWindowsCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "fonts":
		cmd, err = parseFontsCmd(subArgs, r)
	case "daemon":
		cmd, err = parseDaemonCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
