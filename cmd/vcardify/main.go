package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/vcardify/vcardify/internal/config"
	"github.com/vcardify/vcardify/internal/contact"
	"github.com/vcardify/vcardify/internal/output"
	"github.com/vcardify/vcardify/internal/pipeline"
	"github.com/vcardify/vcardify/internal/rowio"
	"github.com/vcardify/vcardify/internal/tui"
	"github.com/vcardify/vcardify/internal/vcard"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for vcardify.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Convert ConvertCmd       `cmd:"" help:"Convert tabular contact data to a vCard file."`
	Preview PreviewCmd       `cmd:"" help:"Browse parsed contacts in an interactive TUI before converting."`
	Inspect InspectCmd       `cmd:"" help:"Summarize the contents of an existing vCard file."`
}

// conversion stages shown by the display.
var convertStages = []string{"read", "convert", "write"}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/vcardify/config.yaml"),
		".vcardify.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// rowReader abstracts rowio.Registry for testing.
type rowReader interface {
	Read(path string, opts rowio.Options) ([][]string, error)
}

// blobWriter abstracts output.Writer for testing.
type blobWriter interface {
	Derive(input, explicit string) string
	Write(path string, data []byte) error
}

// ConvertCmd converts one input file into a vCard file.
type ConvertCmd struct {
	Input           string `arg:"" help:"Input file (.csv, .tsv, .txt, .dat, or .xlsx)."`
	Output          string `help:"Output file path (default: input path with a .vcf extension)." short:"o"`
	Start           int    `help:"First row to include (1-based)." short:"s"`
	End             int    `help:"Last row to include (1-based)." short:"e"`
	FormatTelephone bool   `help:"Reformat telephone numbers into international display form." short:"t"`
	Delimiter       string `help:"Field delimiter for delimited text input." short:"d"`
	Sheet           string `help:"Worksheet name for workbook input (default: first sheet)."`
	Force           bool   `help:"Overwrite the output file if it exists." short:"f"`
	NoTUI           bool   `help:"Force plain text output even if stdout is a TTY."`
}

// Run executes the convert command.
func (c *ConvertCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	// Apply CLI flag overrides.
	if c.Delimiter != "" {
		cfg.Input.Delimiter = c.Delimiter
	}
	if c.Sheet != "" {
		cfg.Input.Sheet = c.Sheet
	}
	if c.FormatTelephone {
		cfg.Convert.FormatTelephone = true
	}
	if c.Force {
		cfg.Output.Force = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	reg := rowio.NewRegistry()
	writer := output.NewWriter(cfg.Output.Dir, cfg.Output.Force)

	bridge := tui.NewBridge()
	display := tui.NewDisplay(tui.DisplayOptions{
		Writer:     os.Stdout,
		ForcePlain: c.NoTUI,
		Stages:     convertStages,
	})

	return c.run(os.Stdout, cfg, reg, writer, display, bridge)
}

// run executes the conversion with display lifecycle management, enabling testable wiring.
func (c *ConvertCmd) run(w io.Writer, cfg *config.Config, rows rowReader, out blobWriter, display tui.Display, bridge *tui.Bridge) error {
	// Start display goroutine.
	displayDone := make(chan error, 1)
	go func() {
		displayDone <- display.Run(context.Background(), bridge.Events())
	}()

	count, path, convErr := c.convert(cfg, rows, out, bridge)

	// Signal display completion.
	if convErr != nil {
		bridge.Error(convErr)
	} else {
		bridge.Done(count, path)
	}

	// Wait for display to finish (so it releases the terminal).
	<-displayDone

	if convErr != nil {
		return fmt.Errorf("convert: %w", convErr)
	}

	_, _ = fmt.Fprintf(w, "Converted %d contacts → %s\n", count, path)
	return nil
}

// convert performs read → convert → write, reporting each stage to the bridge.
func (c *ConvertCmd) convert(cfg *config.Config, rows rowReader, out blobWriter, bridge *tui.Bridge) (int, string, error) {
	bridge.Send(tui.StageUpdateMsg{Stage: "read", Status: tui.StatusRunning, Detail: c.Input})
	raw, err := rows.Read(c.Input, rowio.Options{
		Delimiter: cfg.DelimiterRune(),
		Sheet:     cfg.Input.Sheet,
	})
	if err != nil {
		bridge.Send(tui.StageUpdateMsg{Stage: "read", Status: tui.StatusFailed})
		return 0, "", err
	}
	bridge.Send(tui.StageUpdateMsg{Stage: "read", Status: tui.StatusDone, Detail: fmt.Sprintf("%d rows", len(raw))})

	bridge.Send(tui.StageUpdateMsg{Stage: "convert", Status: tui.StatusRunning})
	conv := pipeline.New(
		pipeline.WithWindow(c.Start, c.End),
		pipeline.WithSerializer(vcard.NewSerializer(
			vcard.WithTelephoneFormatting(cfg.Convert.FormatTelephone),
		)),
		pipeline.WithStatusCallback(func(su pipeline.StatusUpdate) {
			bridge.Send(tui.StageUpdateMsg{
				Stage:  "convert",
				Status: tui.StatusRunning,
				Detail: fmt.Sprintf("%s: %d", su.Stage, su.Count),
			})
		}),
	)
	result := conv.Convert(raw)
	bridge.Send(tui.StageUpdateMsg{Stage: "convert", Status: tui.StatusDone, Detail: fmt.Sprintf("%d contacts", result.Count)})

	path := out.Derive(c.Input, c.Output)
	bridge.Send(tui.StageUpdateMsg{Stage: "write", Status: tui.StatusRunning, Detail: path})
	if err := out.Write(path, []byte(result.VCards)); err != nil {
		bridge.Send(tui.StageUpdateMsg{Stage: "write", Status: tui.StatusFailed})
		return 0, "", err
	}
	bridge.Send(tui.StageUpdateMsg{Stage: "write", Status: tui.StatusDone, Detail: path})

	return result.Count, path, nil
}

// PreviewCmd opens the interactive contact preview TUI.
type PreviewCmd struct {
	Input           string `arg:"" help:"Input file (.csv, .tsv, .txt, .dat, or .xlsx)."`
	Start           int    `help:"First row to include (1-based)." short:"s"`
	End             int    `help:"Last row to include (1-based)." short:"e"`
	FormatTelephone bool   `help:"Show telephone numbers in international display form." short:"t"`
	Delimiter       string `help:"Field delimiter for delimited text input." short:"d"`
	Sheet           string `help:"Worksheet name for workbook input (default: first sheet)."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the preview TUI.
func (p *PreviewCmd) Run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("preview: requires a terminal (TTY)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if p.Delimiter != "" {
		cfg.Input.Delimiter = p.Delimiter
	}
	if p.Sheet != "" {
		cfg.Input.Sheet = p.Sheet
	}
	if p.FormatTelephone {
		cfg.Convert.FormatTelephone = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	rows, err := rowio.NewRegistry().Read(p.Input, rowio.Options{
		Delimiter: cfg.DelimiterRune(),
		Sheet:     cfg.Input.Sheet,
	})
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	window := contact.Window(rows, p.Start, p.End)
	contacts := make([]contact.Contact, len(window))
	for i, row := range window {
		contacts[i] = contact.FromRow(row)
	}

	m := tui.NewPreviewModel(filepath.Base(p.Input), contacts, cfg.Convert.FormatTelephone)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	return p.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (p *PreviewCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("preview: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// InspectCmd summarizes an existing vCard file.
type InspectCmd struct {
	Input string `arg:"" help:"vCard (.vcf) file to inspect."`
}

// Run executes the inspect command.
func (c *InspectCmd) Run() error {
	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("inspect: %w: %s: %v", rowio.ErrUnreadable, c.Input, err)
	}
	defer f.Close()

	return c.run(os.Stdout, f)
}

// run decodes cards from r and prints a summary, enabling testable wiring.
func (c *InspectCmd) run(w io.Writer, r io.Reader) error {
	cards, err := vcard.DecodeAll(r)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	for i, card := range cards {
		name := card.FormattedName
		if name == "" {
			name = "(no name)"
		}
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, name)
		if card.Email != "" {
			_, _ = fmt.Fprintf(w, "   email: %s\n", card.Email)
		}
		if card.Telephone != "" {
			_, _ = fmt.Fprintf(w, "   tel:   %s\n", card.Telephone)
		}
	}
	_, _ = fmt.Fprintf(w, "%d cards\n", len(cards))
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitConvert = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	// Failures after conversion has begun map to the conversion exit code.
	if errors.Is(err, output.ErrExists) || errors.Is(err, vcard.ErrNoCards) {
		return exitConvert
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
