package texsubmit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hellenic-development/texsubmit/pkg/bibexport"
	"github.com/hellenic-development/texsubmit/pkg/figures"
	"github.com/hellenic-development/texsubmit/pkg/flatten"
	"github.com/hellenic-development/texsubmit/pkg/formatter"
	"github.com/hellenic-development/texsubmit/pkg/manifest"
	"github.com/hellenic-development/texsubmit/pkg/pdfcheck"
	"github.com/hellenic-development/texsubmit/pkg/project"
	"github.com/hellenic-development/texsubmit/pkg/texrewrite"
)

// Version is the texsubmit release.
const Version = "0.1.0"

// Defaults applied by Run to zero-valued options.
const (
	DefaultMainFile   = "Main.tex"
	DefaultOutputDir  = "transformed"
	DefaultOutputName = "Main.tex"
	DefaultBibName    = "References"
)

// Options configures a conversion.
type Options struct {
	MainFile   string
	FigureDir  string
	Latexpand  string // flattening tool; empty = MainFile is already flat
	Perl       string // interpreter for Latexpand; empty runs it directly
	OutputDir  string
	OutputName string
	Bibexport  string // citation-extraction tool; empty disables the step
	BibName    string // target of \bibliography{} and base name of the exported .bib
	CheckPDF   bool   // validate PDF figures before copying them
	Timeout    time.Duration
	Logger     Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the conversion output.
type Result struct {
	Mapping      *figures.Mapping
	Document     string // final single-file LaTeX source
	OutputFile   string
	Encoding     flatten.Encoding
	Bibliography string // exported .bib path, empty when not exported
	SupportFiles project.CopiedFiles
	ManifestFile string
	ReportFile   string
	Warnings     []string
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// runLogger forwards figure discovery progress to Options.Logger and keeps the
// warnings for the report.
type runLogger struct {
	opts     *Options
	warnings []string
}

func (l *runLogger) Infof(f string, a ...any) { l.opts.logInfo(f, a...) }

func (l *runLogger) Warnf(f string, a ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(f, a...))
	l.opts.logWarn(f, a...)
}

// Run executes the conversion pipeline and returns the result: validate inputs,
// export the cited bibliography, flatten the project, rename and copy figures,
// rewrite the document and write the submission package to OutputDir.
func Run(ctx context.Context, opts Options) (*Result, error) {
	// Apply defaults.
	if opts.MainFile == "" {
		opts.MainFile = DefaultMainFile
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.OutputName == "" {
		opts.OutputName = DefaultOutputName
	}
	if opts.BibName == "" {
		opts.BibName = DefaultBibName
	}

	log := &runLogger{opts: &opts}
	result := &Result{}

	var auxFile string
	if opts.Bibexport != "" {
		auxFile = bibexport.AuxPath(opts.MainFile)
	}

	opts.logInfo("Validating inputs...")
	if err := project.Validate(project.Inputs{
		MainFile:  opts.MainFile,
		FigureDir: opts.FigureDir,
		Flattener: opts.Latexpand,
		AuxFile:   auxFile,
	}); err != nil {
		opts.logError("Input validation failed")
		return nil, fmt.Errorf("invalid inputs:\n%w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		opts.logError("Creating %s failed", opts.OutputDir)
		return nil, &figures.FilesystemError{Op: "create directory", Path: opts.OutputDir, Err: err}
	}

	// Bibliography export is best effort: the author can build the .bib by hand.
	bibWarning := ""
	if opts.Bibexport != "" {
		bibPath := filepath.Join(opts.OutputDir, opts.BibName+".bib")
		opts.logInfo("Exporting cited bibliography entries to %s...", bibPath)
		exporter := &bibexport.Exporter{Tool: opts.Bibexport, Timeout: opts.Timeout}
		if err := exporter.Export(ctx, auxFile, bibPath); err != nil {
			bibWarning = err.Error()
			log.Warnf("Bibliography export failed, create %s manually: %v", filepath.Base(bibPath), err)
		} else {
			result.Bibliography = bibPath
		}
	}

	if opts.Latexpand != "" {
		opts.logInfo("Flattening %s with %s...", opts.MainFile, opts.Latexpand)
	} else {
		opts.logInfo("Reading %s (no flattening tool configured)...", opts.MainFile)
	}
	flattener := &flatten.Flattener{Tool: opts.Latexpand, Interpreter: opts.Perl, Timeout: opts.Timeout}
	text, enc, err := flattener.Flatten(ctx, opts.MainFile)
	if err != nil {
		opts.logError("Flattening %s failed", opts.MainFile)
		return nil, fmt.Errorf("flatten document: %w", err)
	}
	result.Encoding = enc
	if enc == flatten.Legacy {
		log.Warnf("Document is not UTF-8, its bytes are kept unchanged")
	}

	opts.logInfo("Discovering figures in %s...", opts.FigureDir)
	discoverer := &figures.Discoverer{
		Resolver: &figures.Resolver{Roots: []string{opts.FigureDir, filepath.Dir(opts.MainFile)}},
		DestDir:  opts.OutputDir,
		Logger:   log,
	}
	if opts.CheckPDF {
		discoverer.Validate = pdfcheck.Validate
	}
	mapping, err := discoverer.Discover(text)
	if err != nil {
		opts.logError("Figure discovery failed")
		return nil, fmt.Errorf("discover figures: %w", err)
	}
	result.Mapping = mapping
	if mapping.Len() == 0 {
		opts.logInfo("No figures found in the document")
	} else {
		opts.logInfo("Copied %d figure(s) for %d reference(s)", mapping.Len(), len(mapping.References()))
	}

	opts.logInfo("Rewriting figure references...")
	doc, err := figures.Rewrite(text, mapping)
	if err != nil {
		opts.logError("Rewriting figure references failed")
		return nil, fmt.Errorf("rewrite figure references: %w", err)
	}
	doc = texrewrite.StripGraphicsPath(doc)
	doc = texrewrite.RetargetBibliography(doc, opts.BibName)
	result.Document = doc

	result.OutputFile = filepath.Join(opts.OutputDir, opts.OutputName)
	opts.logInfo("Writing %s...", result.OutputFile)
	if err := project.WriteFileAtomic(result.OutputFile, []byte(doc), 0644); err != nil {
		opts.logError("Writing %s failed", result.OutputFile)
		return nil, &figures.FilesystemError{Op: "write", Path: result.OutputFile, Err: err}
	}

	support, err := project.CopySupportFiles(filepath.Dir(opts.MainFile), opts.OutputDir)
	if err != nil {
		opts.logError("Copying support files failed")
		return nil, &figures.FilesystemError{Op: "copy support files", Path: filepath.Dir(opts.MainFile), Err: err}
	}
	result.SupportFiles = support
	for _, kind := range project.SupportKinds {
		if n := len(support[kind.Label]); n > 0 {
			opts.logInfo("Copied %d %s file(s)", n, kind.Label)
		}
	}

	result.ManifestFile = filepath.Join(opts.OutputDir, manifest.FileName)
	if err := manifest.Write(result.ManifestFile, manifest.FromMapping(opts.MainFile, opts.FigureDir, mapping)); err != nil {
		opts.logError("Writing %s failed", result.ManifestFile)
		return nil, err
	}

	result.Warnings = log.warnings

	summary := formatter.Summary{
		MainFile:     opts.MainFile,
		OutputFile:   result.OutputFile,
		Encoding:     string(enc),
		Figures:      mapping.Figures(),
		BibWarning:   bibWarning,
		SupportFiles: support,
		Warnings:     result.Warnings,
	}
	if result.Bibliography != "" {
		summary.Bibliography = filepath.Base(result.Bibliography)
	}
	result.ReportFile = filepath.Join(opts.OutputDir, formatter.ReportFileName)
	if err := os.WriteFile(result.ReportFile, []byte(formatter.ToMarkdown(summary)), 0644); err != nil {
		opts.logError("Writing %s failed", result.ReportFile)
		return nil, &figures.FilesystemError{Op: "write", Path: result.ReportFile, Err: err}
	}

	return result, nil
}
