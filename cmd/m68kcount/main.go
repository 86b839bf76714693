package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	lipglosslib "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/m68kcount"
	"github.com/fwojciec/m68kcount/asm"
	"github.com/fwojciec/m68kcount/bubbletea"
	"github.com/fwojciec/m68kcount/chroma"
	"github.com/fwojciec/m68kcount/clipboard"
	"github.com/fwojciec/m68kcount/fs"
	"github.com/fwojciec/m68kcount/lipgloss"
	"github.com/fwojciec/m68kcount/m68k"
)

// ErrNoInput is returned when print mode has no source to read.
var ErrNoInput = errors.New("no input: pipe source or provide a file path")

// LineRange is an inclusive range of 1-based line numbers.
type LineRange struct {
	First int
	Last  int
}

// ParseRange parses "first:last".
func ParseRange(s string) (LineRange, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return LineRange{}, fmt.Errorf("invalid range %q: want first:last", s)
	}
	first, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	last, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if first < 1 || last < 1 {
		return LineRange{}, fmt.Errorf("invalid range %q: lines start at 1", s)
	}
	return LineRange{First: min(first, last), Last: max(first, last)}, nil
}

// App encapsulates the application logic for testing.
type App struct {
	Stdin    io.Reader // Read source from stdin if Path is empty; nil when stdin is a terminal
	Stdout   io.Writer
	Path     string
	Loader   m68kcount.SourceLoader
	Analyzer m68kcount.Analyzer
	Viewer   m68kcount.Viewer

	Print   bool       // Write the listing to Stdout instead of opening Viewer
	Range   *LineRange // Optional range totals, print mode only
	Listing bubbletea.ListingOptions
}

// Run reads and analyzes the source, then prints or displays it.
func (a *App) Run(ctx context.Context) error {
	source, err := a.readSource(ctx)
	if err != nil {
		return err
	}

	session := m68kcount.NewSession(a.Analyzer)
	if err := session.Submit(source); err != nil {
		return err
	}

	if !a.Print {
		return a.Viewer.View(ctx, session)
	}
	return a.print(session)
}

func (a *App) readSource(ctx context.Context) (string, error) {
	if a.Path != "" {
		return a.Loader.Load(ctx, a.Path)
	}
	if a.Stdin == nil {
		if a.Print {
			return "", ErrNoInput
		}
		// The viewer starts empty and waits for pasted source.
		return "", nil
	}
	data, err := io.ReadAll(a.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func (a *App) print(session *m68kcount.Session) error {
	if !session.Analyzed() {
		return m68kcount.ErrNoSource
	}
	lines := session.Lines()
	opts := a.Listing

	var rangeTotals *m68kcount.Totals
	if r := a.Range; r != nil {
		if r.Last > len(lines) {
			return fmt.Errorf("range %d:%d outside lines 1–%d", r.First, r.Last, len(lines))
		}
		session.Click(r.First - 1)
		if r.Last != r.First {
			session.Click(r.Last - 1)
		}
		sel := session.Selection()
		opts.Selection = &sel
		rangeTotals = sel.Totals
		if rangeTotals == nil {
			t := m68kcount.Aggregate(lines[r.First-1 : r.Last])
			rangeTotals = &t
		}
	}

	if _, err := fmt.Fprintln(a.Stdout, bubbletea.RenderListing(lines, opts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(a.Stdout, "\nTotal: %s\n", m68kcount.FormatTotals(*session.Totals())); err != nil {
		return err
	}
	if rangeTotals != nil {
		_, err := fmt.Fprintf(a.Stdout, "Lines %d–%d: %s\n", a.Range.First, a.Range.Last, m68kcount.FormatTotals(*rangeTotals))
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	printMode := flag.Bool("print", false, "write the annotated listing to stdout instead of opening the viewer")
	themeName := flag.String("theme", "", "color theme: dark or light (default: detect from terminal)")
	rangeFlag := flag.String("range", "", "with -print, also report totals for lines `first:last`")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: m68kcount [flags] [file]")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	theme, err := lipgloss.ThemeByName(*themeName)
	if err != nil {
		return err
	}
	highlighter, err := chroma.NewHighlighter(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return fmt.Errorf("error setting up syntax highlighting: %w", err)
	}
	tokenizer := asm.NewTokenizer(m68k.Mnemonics())
	loader := fs.NewLoader()

	app := &App{
		Stdout:   os.Stdout,
		Loader:   loader,
		Analyzer: m68k.NewAnalyzer(),
		Print:    *printMode,
		Listing: bubbletea.ListingOptions{
			Theme:       theme,
			Renderer:    lipglosslib.NewRenderer(os.Stdout),
			Tokenizer:   tokenizer,
			Highlighter: highlighter,
		},
	}

	if *rangeFlag != "" {
		if !app.Print {
			return errors.New("-range requires -print")
		}
		r, err := ParseRange(*rangeFlag)
		if err != nil {
			return err
		}
		app.Range = &r
	}

	switch flag.NArg() {
	case 0:
		stat, err := os.Stdin.Stat()
		if err != nil {
			return fmt.Errorf("error checking stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			app.Stdin = os.Stdin
		}
	case 1:
		app.Path = flag.Arg(0)
	default:
		flag.Usage()
		return errors.New("too many arguments")
	}

	app.Viewer = bubbletea.NewViewer(
		bubbletea.WithTheme(theme),
		bubbletea.WithSource(loader, app.Path),
		bubbletea.WithClipboard(clipboard.NewSystem()),
		bubbletea.WithTokenizer(tokenizer),
		bubbletea.WithHighlighter(highlighter),
	)

	return app.Run(ctx)
}
