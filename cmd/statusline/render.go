package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/gitinfo"
	"github.com/alexisbeaulieu97/statusline/internal/logger"
	"github.com/alexisbeaulieu97/statusline/internal/status"
	"github.com/alexisbeaulieu97/statusline/internal/statusline"
	"github.com/alexisbeaulieu97/statusline/internal/widget"
)

type renderOptions struct {
	settingsPath string
	usagePath    string
	width        int
	gitTimeout   time.Duration
	verbose      bool

	// lookupGit replaces the go-git provider in tests.
	lookupGit func(ctx context.Context, dir string) (*gitinfo.Info, error)
}

// renderCmdRunner prints the status line. Only a failure to write the output
// is returned; every other problem is logged and rendering continues.
func renderCmdRunner(ctx context.Context, in io.Reader, out, errOut io.Writer, opts renderOptions) (err error) {
	log := logger.Discard()
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]any{"panic": fmt.Sprint(r), "stack": string(debug.Stack())}).Warn("status line render panicked")
			err = nil
		}
		_ = log.Close()
	}()

	settings, warnings, loadErr := loadSettings(opts.settingsPath)
	log = newRenderLogger(settings, opts.verbose, errOut)

	if loadErr != nil {
		log.Error(loadErr, "settings could not be loaded, using defaults")
	}
	log.Warnings("settings problem", warnings)

	st, decodeErr := status.Decode(in)
	if decodeErr != nil {
		log.Error(decodeErr, "session document could not be decoded")
		st = &status.Status{}
	}

	usage := loadUsage(opts.usagePath, log)

	var info *gitinfo.Info
	if usesGit(settings, widget.DefaultRegistry()) {
		info = lookupGit(ctx, st.Directory(), opts, log)
	}

	renderCtx := widget.NewRenderContext(widget.ContextOptions{
		Status:        st,
		Usage:         usage,
		TerminalWidth: terminalWidth(opts.width, errOut),
		Settings:      settings,
		Git:           info,
	})

	line := statusline.RenderStatusLine(renderCtx)
	if line == "" {
		return nil
	}
	_, err = fmt.Fprintln(out, line)
	return err
}

func loadSettings(path string) (*config.Settings, []error, error) {
	resolved, err := resolvePath(path, defaultSettingsPath)
	if err != nil {
		return config.DefaultSettings(), nil, err
	}

	settings, warnings, err := config.Load(resolved, widget.DefaultRegistry())
	if err != nil {
		return config.DefaultSettings(), nil, err
	}
	return settings, warnings, nil
}

func loadUsage(path string, log *logger.Logger) *status.Usage {
	resolved, err := resolvePath(path, defaultUsagePath)
	if err != nil {
		log.Error(err, "usage snapshot path could not be determined")
		return nil
	}

	usage, err := status.LoadUsage(resolved)
	if err != nil {
		log.WithField("path", resolved).Warn(err.Error())
		return nil
	}
	return usage
}

func lookupGit(ctx context.Context, dir string, opts renderOptions, log *logger.Logger) *gitinfo.Info {
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.gitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.gitTimeout)
		defer cancel()
	}

	lookup := opts.lookupGit
	if lookup == nil {
		lookup = gitinfo.NewProvider(log).Lookup
	}
	info, err := lookup(ctx, dir)
	if err != nil {
		log.WithField("dir", dir).Error(err, "git lookup failed")
		return nil
	}
	return info
}

// usesGit reports whether any configured widget reads repository state.
func usesGit(settings *config.Settings, reg *widget.Registry) bool {
	for _, name := range settings.WidgetNames() {
		w, ok := reg.Lookup(name)
		if ok && w.Metadata().Category == widget.CategoryGit {
			return true
		}
	}
	return false
}

// terminalWidth prefers the flag, then COLUMNS, then the size of the
// diagnostic stream, which stays attached to the terminal when stdout is piped.
func terminalWidth(flag int, errOut io.Writer) int {
	if flag > 0 {
		return flag
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	if file, ok := errOut.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil {
			return width
		}
	}
	return 0
}

// newRenderLogger writes to stderr in verbose mode, to the configured log
// file otherwise, and nowhere when neither is set.
func newRenderLogger(settings *config.Settings, verbose bool, errOut io.Writer) *logger.Logger {
	opts := logger.Options{Level: settings.Log.Level, File: settings.Log.File}
	if verbose {
		opts = logger.Options{Level: "debug", HumanReadable: true, Writer: errOut}
	}
	if opts.Writer == nil && opts.File == "" {
		return logger.Discard()
	}

	log, err := logger.New(opts)
	if err != nil {
		return logger.Discard()
	}
	return log
}
