package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hellenic-development/texsubmit"

	"github.com/charmbracelet/fang"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = texsubmit.Version

var (
	mainFile  string
	figureDir string
	latexpand string
	perl      string
	outputDir string
	bibTool   string
	bibName   string
	checkPDF  bool
	timeout   time.Duration
)

// envFlags lists the flags that fall back to an environment variable (or .env
// entry) when they are not given on the command line.
var envFlags = map[string]string{
	"latexpand": "TEXSUBMIT_LATEXPAND",
	"figures":   "TEXSUBMIT_FIGURES",
	"bibexport": "TEXSUBMIT_BIBEXPORT",
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "texsubmit",
		Short: "Convert a multi-file LaTeX project into a single-file journal submission",
		Long: `texsubmit flattens a LaTeX project into one document, renames every figure
it references to Fig1, Fig2, ... in order of first appearance, copies the figures
and class/style files next to it and exports the cited bibliography entries.

Run it from the directory of the main document after compiling it once, so the
.aux file needed for the bibliography export exists.`,
		Example: `  texsubmit
  texsubmit -m paper.tex -f ../Figures -o submission
  texsubmit --latexpand "" --bibexport "" --check-pdf`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return applyEnv(cmd)
		},
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&mainFile, "main", "m", texsubmit.DefaultMainFile, "Main LaTeX document")
	rootCmd.Flags().StringVarP(&figureDir, "figures", "f", "../Figures", "Directory holding the figures ($TEXSUBMIT_FIGURES)")
	rootCmd.Flags().StringVarP(&latexpand, "latexpand", "l", "../latexpand", "Flattening tool, empty when the main document is already flat ($TEXSUBMIT_LATEXPAND)")
	rootCmd.Flags().StringVar(&perl, "perl", "perl", "Interpreter for the flattening tool, empty to run it directly")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", texsubmit.DefaultOutputDir, "Output directory")
	rootCmd.Flags().StringVar(&bibTool, "bibexport", "bibexport", "Bibliography export tool, empty to skip the export ($TEXSUBMIT_BIBEXPORT)")
	rootCmd.Flags().StringVar(&bibName, "bib-name", texsubmit.DefaultBibName, "Name of the exported bibliography, without .bib")
	rootCmd.Flags().BoolVar(&checkPDF, "check-pdf", false, "Validate PDF figures before copying them")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Time limit for each external tool")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("texsubmit version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, key := range envFlags {
		if flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}
		value, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n📄 LaTeX Submission Converter")
	cyan.Println("=============================")
	cyan.Println()

	opts := texsubmit.Options{
		MainFile:  mainFile,
		FigureDir: figureDir,
		Latexpand: latexpand,
		Perl:      perl,
		OutputDir: outputDir,
		Bibexport: bibTool,
		BibName:   bibName,
		CheckPDF:  checkPDF,
		Timeout:   timeout,
		Logger:    &cliLogger{},
	}

	result, err := texsubmit.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	cyan.Println("\n📊 Conversion Summary:")
	fmt.Printf("  • Source encoding: %s\n", result.Encoding)
	fmt.Printf("  • Figures: %d (%d references)\n", result.Mapping.Len(), len(result.Mapping.References()))
	for _, f := range result.Mapping.Figures() {
		fmt.Printf("      %s <- %s\n", f.FileName(), f.Source)
	}
	if result.Bibliography != "" {
		fmt.Printf("  • Bibliography: %s\n", result.Bibliography)
	} else if bibTool != "" {
		fmt.Printf("  • Bibliography: not exported\n")
	}
	if n := result.SupportFiles.Total(); n > 0 {
		fmt.Printf("  • Support files: %d\n", n)
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("  • Warnings: %d (see %s)\n", len(result.Warnings), result.ReportFile)
	}

	green.Printf("\n✨ Submission written to %s\n\n", result.OutputFile)
	return nil
}

// cliLogger implements texsubmit.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
