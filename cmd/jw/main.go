package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vanderheijden86/jsonwork/pkg/config"
	"github.com/vanderheijden86/jsonwork/pkg/debug"
	"github.com/vanderheijden86/jsonwork/pkg/document"
	"github.com/vanderheijden86/jsonwork/pkg/metrics"
	"github.com/vanderheijden86/jsonwork/pkg/ui"
	"github.com/vanderheijden86/jsonwork/pkg/version"
	"github.com/vanderheijden86/jsonwork/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	helpFlag := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	keysFlag := flag.Bool("keys", false, "List actions and their key bindings, then exit")
	themeFlag := flag.String("theme", "", "Color theme: default, light, mono (overrides config)")
	watchFlag := flag.Bool("watch", false, "Reload the document when the file changes on disk")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *helpFlag {
		fmt.Println("Usage: jw [options] [file.json]")
		fmt.Println("\nAn interactive viewer for JSON documents. Reads the file argument,")
		fmt.Println("or standard input when no file is given.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("jw %s\n", version.Version)
		os.Exit(0)
	}

	if *keysFlag {
		printKeyBindings()
		os.Exit(0)
	}

	src, path, err := readInput(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "jw: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	doc, err := document.Parse(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jw: parsing %s: %v\n", inputName(path), err)
		os.Exit(1)
	}
	debug.LogTiming("parse", time.Since(start))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "jw: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	km := ui.DefaultKeymap()
	if err := km.ApplyOverrides(cfg.Keys); err != nil {
		fmt.Fprintf(os.Stderr, "jw: %v\n", err)
		os.Exit(1)
	}

	themeName := cfg.Theme
	if *themeFlag != "" {
		themeName = *themeFlag
	}
	theme, err := ui.ThemeByName(themeName, lipgloss.DefaultRenderer())
	if err != nil {
		fmt.Fprintf(os.Stderr, "jw: %v\n", err)
		os.Exit(1)
	}

	// When the document came in on stdin the terminal must be reopened
	// for key input; the pipe is already drained.
	var progOpts []tea.ProgramOption
	if path == "" {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			fmt.Fprintf(os.Stderr, "jw: cannot open terminal for input: %v\n", err)
			os.Exit(1)
		}
		defer tty.Close()
		progOpts = append(progOpts, tea.WithInput(tty))
	}

	var w *watcher.Watcher
	if *watchFlag {
		if path == "" {
			fmt.Fprintln(os.Stderr, "jw: -watch needs a file argument, stdin cannot be watched")
			os.Exit(2)
		}
		w, err = watcher.New(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jw: watching %s: %v\n", path, err)
			os.Exit(1)
		}
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "jw: watching %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	m := ui.NewModel(doc, path).WithConfig(cfg, theme, km)
	if w != nil {
		m = m.WithWatcher(w)
	}
	defer m.Stop()

	if err := runTUIProgram(m, progOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error running jw: %v\n", err)
		os.Exit(1)
	}

	for _, stats := range metrics.AllTimingStats() {
		debug.Log("%s", stats)
	}
}

// readInput returns the document bytes and the file path. The path is
// "" when the document came from stdin; "-" is accepted as an explicit
// stdin marker.
func readInput(args []string) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("expected at most one file argument, got %d", len(args))
	}
	if len(args) == 1 && args[0] != "-" {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", err
		}
		return src, args[0], nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, "", errors.New("no input (pass a file argument or pipe JSON on stdin)")
	}
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("reading stdin: %w", err)
	}
	return src, "", nil
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}

// printKeyBindings lists the action registry with the default keys, in
// the form the config file's keys: section accepts.
func printKeyBindings() {
	km := ui.DefaultKeymap()
	fmt.Println("Actions for the keys: section of config.yaml.")
	fmt.Println("Example:  keys: {cursor_down: [j, down], reload: [none]}")
	fmt.Println()
	for _, name := range ui.ActionNames() {
		action, _ := ui.ActionByName(name)
		keys := strings.Join(km.Bindings(action), ", ")
		fmt.Printf("  %-17s %-22s %s\n", name, keys, action.Describe())
	}
}

func runTUIProgram(m ui.Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}, opts...)
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set JW_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("JW_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
