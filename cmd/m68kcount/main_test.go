package main_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/m68kcount"
	"github.com/fwojciec/m68kcount/bubbletea"
	main "github.com/fwojciec/m68kcount/cmd/m68kcount"
	"github.com/fwojciec/m68kcount/m68k"
	"github.com/fwojciec/m68kcount/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loopSource = "start:\tmoveq\t#0,d0\n\tmove.w\td0,d1\n\tdbf\td1,start\n\trts"

func plainListing() bubbletea.ListingOptions {
	r := lipgloss.NewRenderer(nil)
	r.SetColorProfile(termenv.Ascii)
	return bubbletea.ListingOptions{Renderer: r}
}

func TestApp_Run_ViewsStdin(t *testing.T) {
	t.Parallel()

	var analyzed string
	var viewed *m68kcount.Session
	app := &main.App{
		Stdin: strings.NewReader("\tnop\n"),
		Analyzer: &mock.Analyzer{
			AnalyzeFn: func(source string) ([]m68kcount.Line, error) {
				analyzed = source
				return []m68kcount.Line{{Text: "\tnop", Words: 1, Timings: []m68kcount.Timing{{Clock: 4, Read: 1}}}}, nil
			},
		},
		Viewer: &mock.Viewer{
			ViewFn: func(ctx context.Context, session *m68kcount.Session) error {
				viewed = session
				return nil
			},
		},
	}

	err := app.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "\tnop\n", analyzed)
	require.NotNil(t, viewed)
	assert.Len(t, viewed.Lines(), 1)
}

func TestApp_Run_LoadsPath(t *testing.T) {
	t.Parallel()

	var loadedPath string
	app := &main.App{
		Stdin: strings.NewReader("ignored"),
		Path:  "copper.s",
		Loader: &mock.SourceLoader{
			LoadFn: func(ctx context.Context, path string) (string, error) {
				loadedPath = path
				return "\trts", nil
			},
		},
		Analyzer: m68k.NewAnalyzer(),
		Viewer: &mock.Viewer{
			ViewFn: func(ctx context.Context, session *m68kcount.Session) error {
				assert.Equal(t, "\trts", session.Source())
				return nil
			},
		},
	}

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "copper.s", loadedPath)
}

func TestApp_Run_EmptyViewerWithoutInput(t *testing.T) {
	t.Parallel()

	var viewed *m68kcount.Session
	app := &main.App{
		Analyzer: &mock.Analyzer{
			AnalyzeFn: func(source string) ([]m68kcount.Line, error) {
				t.Fatal("analyzer should not be called without source")
				return nil, nil
			},
		},
		Viewer: &mock.Viewer{
			ViewFn: func(ctx context.Context, session *m68kcount.Session) error {
				viewed = session
				return nil
			},
		},
	}

	require.NoError(t, app.Run(context.Background()))
	require.NotNil(t, viewed)
	assert.False(t, viewed.Analyzed())
}

func TestApp_Run_Errors(t *testing.T) {
	t.Parallel()

	t.Run("load error", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("permission denied")
		app := &main.App{
			Path: "x.s",
			Loader: &mock.SourceLoader{
				LoadFn: func(ctx context.Context, path string) (string, error) { return "", loadErr },
			},
			Viewer: &mock.Viewer{},
		}

		assert.ErrorIs(t, app.Run(context.Background()), loadErr)
	})

	t.Run("analysis error", func(t *testing.T) {
		t.Parallel()

		app := &main.App{
			Stdin: strings.NewReader("\x00\x01"),
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(source string) ([]m68kcount.Line, error) { return nil, errors.New("binary") },
			},
			Viewer: &mock.Viewer{},
		}

		assert.ErrorIs(t, app.Run(context.Background()), m68kcount.ErrAnalysisFailed)
	})

	t.Run("view error", func(t *testing.T) {
		t.Parallel()

		viewErr := errors.New("terminal error")
		app := &main.App{
			Stdin:    strings.NewReader("\tnop"),
			Analyzer: m68k.NewAnalyzer(),
			Viewer: &mock.Viewer{
				ViewFn: func(ctx context.Context, session *m68kcount.Session) error { return viewErr },
			},
		}

		assert.Equal(t, viewErr, app.Run(context.Background()))
	})

	t.Run("print without input", func(t *testing.T) {
		t.Parallel()

		app := &main.App{Print: true, Analyzer: m68k.NewAnalyzer()}

		assert.ErrorIs(t, app.Run(context.Background()), main.ErrNoInput)
	})

	t.Run("print blank source", func(t *testing.T) {
		t.Parallel()

		app := &main.App{
			Stdin:    strings.NewReader("  \n\n"),
			Stdout:   &bytes.Buffer{},
			Analyzer: m68k.NewAnalyzer(),
			Print:    true,
		}

		assert.ErrorIs(t, app.Run(context.Background()), m68kcount.ErrNoSource)
	})
}

func TestApp_Run_Print(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Stdin:    strings.NewReader(loopSource),
		Stdout:   &out,
		Analyzer: m68k.NewAnalyzer(),
		Viewer: &mock.Viewer{
			ViewFn: func(ctx context.Context, session *m68kcount.Session) error {
				t.Fatal("viewer should not be called in print mode")
				return nil
			},
		},
		Print:   true,
		Listing: plainListing(),
	}

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "4(1/0)")
	assert.Contains(t, got, "10(2/0) 14(3/0)")
	assert.Contains(t, got, "move.w  d0,d1")
	assert.Contains(t, got, "Total: 34(8/0)–38(9/0) 5 words (10 bytes)\n")
	assert.NotContains(t, got, "Lines ")
}

func TestApp_Run_PrintRange(t *testing.T) {
	t.Parallel()

	t.Run("two lines", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := &main.App{
			Stdin:    strings.NewReader(loopSource),
			Stdout:   &out,
			Analyzer: m68k.NewAnalyzer(),
			Print:    true,
			Range:    &main.LineRange{First: 2, Last: 4},
			Listing:  plainListing(),
		}

		require.NoError(t, app.Run(context.Background()))

		got := out.String()
		assert.Contains(t, got, "Σ lines 2–4: 30(7/0)–34(8/0) 4 words (8 bytes)")
		assert.Contains(t, got, "Lines 2–4: 30(7/0)–34(8/0) 4 words (8 bytes)\n")
	})

	t.Run("single line", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := &main.App{
			Stdin:    strings.NewReader(loopSource),
			Stdout:   &out,
			Analyzer: m68k.NewAnalyzer(),
			Print:    true,
			Range:    &main.LineRange{First: 1, Last: 1},
			Listing:  plainListing(),
		}

		require.NoError(t, app.Run(context.Background()))
		assert.Contains(t, out.String(), "Lines 1–1: 4(1/0) 1 word (2 bytes)\n")
	})

	t.Run("out of bounds", func(t *testing.T) {
		t.Parallel()

		app := &main.App{
			Stdin:    strings.NewReader(loopSource),
			Stdout:   &bytes.Buffer{},
			Analyzer: m68k.NewAnalyzer(),
			Print:    true,
			Range:    &main.LineRange{First: 2, Last: 9},
		}

		err := app.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside lines 1–4")
	})
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    main.LineRange
		wantErr bool
	}{
		{in: "2:4", want: main.LineRange{First: 2, Last: 4}},
		{in: "7:3", want: main.LineRange{First: 3, Last: 7}},
		{in: " 5 : 5 ", want: main.LineRange{First: 5, Last: 5}},
		{in: "5", wantErr: true},
		{in: "a:3", wantErr: true},
		{in: "0:3", wantErr: true},
		{in: "1:", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := main.ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
