package formatter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hellenic-development/texsubmit/pkg/figures"
)

// ReportFileName is the report's name inside the output directory.
const ReportFileName = "SUBMISSION.md"

// Summary collects what a conversion produced.
type Summary struct {
	MainFile     string // source main document
	OutputFile   string // converted single-file document
	Encoding     string
	Figures      []figures.Figure
	Bibliography string              // exported .bib file name, empty when not exported
	BibWarning   string              // why the bibliography was not exported
	SupportFiles map[string][]string // kind label -> file names
	Warnings     []string
}

// ToMarkdown renders a conversion summary as a markdown checklist for the author:
// the figure renaming table, the bibliography status, the support files copied and
// any warnings raised along the way.
func ToMarkdown(s Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Submission Package - %s\n\n", filepath.Base(s.MainFile)))
	sb.WriteString(fmt.Sprintf("Converted document: `%s`", filepath.Base(s.OutputFile)))
	if s.Encoding != "" {
		sb.WriteString(fmt.Sprintf(" (source encoding %s)", s.Encoding))
	}
	sb.WriteString("\n\n")

	// Figures
	sb.WriteString("## Figures\n\n")
	if len(s.Figures) == 0 {
		sb.WriteString("No figures were referenced by the document.\n\n")
	} else {
		sb.WriteString("| Figure | File | Source | First line | Referenced as |\n")
		sb.WriteString("|--------|------|--------|------------|---------------|\n")
		for _, f := range s.Figures {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | `%s` | %d | %s |\n",
				f.Name, f.FileName(), filepath.Base(f.Source), f.First.Line, quoteAll(f.Spellings)))
		}
		sb.WriteString("\n")
	}

	// Bibliography
	sb.WriteString("## Bibliography\n\n")
	switch {
	case s.Bibliography != "":
		sb.WriteString(fmt.Sprintf("- Cited entries exported to `%s`\n\n", s.Bibliography))
	case s.BibWarning != "":
		sb.WriteString(fmt.Sprintf("- Not exported: %s\n- Create the .bib file manually before submitting.\n\n", s.BibWarning))
	default:
		sb.WriteString("- Bibliography export was disabled.\n\n")
	}

	// Support files
	if len(s.SupportFiles) > 0 {
		sb.WriteString("## Support Files\n\n")
		labels := make([]string, 0, len(s.SupportFiles))
		for label := range s.SupportFiles {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", label, quoteAll(s.SupportFiles[label])))
		}
		sb.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range s.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Before Submitting\n\n")
	sb.WriteString("- [ ] Compile the converted document and proofread it against the original\n")
	sb.WriteString("- [ ] Check that every figure appears in the expected place\n")

	return sb.String()
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	return strings.Join(quoted, ", ")
}
