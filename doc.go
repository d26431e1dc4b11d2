// Package texsubmit converts a multi-file LaTeX project into the single-file
// layout journals ask for at submission time: one flattened document, figures
// renamed Fig1, Fig2, ... in order of first reference and copied next to it,
// class and style files alongside, and the cited bibliography entries exported
// to their own .bib file.
//
// The CLI lives in cmd/texsubmit; this root package exposes the same pipeline
// as a Go API.
//
// # Quick start
//
//	result, err := texsubmit.Run(ctx, texsubmit.Options{
//	    MainFile:  "Main.tex",
//	    FigureDir: "../Figures",
//	    Latexpand: "../latexpand",
//	    Perl:      "perl",
//	    Bibexport: "bibexport",
//	    OutputDir: "transformed",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputFile, result.Mapping.Len())
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output. Warnings are also collected in
// [Result.Warnings] and in the SUBMISSION.md report.
//
// # Figure names
//
// Every \includegraphics outside a comment is resolved against the figure
// directory and then the main document's directory, trying the known image
// extensions when none is given. References resolving to the same file share
// one canonical name. A reference spelled without an extension is rewritten
// to the bare name (Fig3), one spelled with an extension keeps it (Fig3.pdf).
// Running the conversion again on its own output changes nothing.
//
// All references are resolved before anything is copied, so a missing figure
// leaves no partial output behind.
package texsubmit
