// Package project validates the inputs of a conversion and handles the plain
// file operations around it: support-file copies and atomic document writes.
package project

import (
	"errors"
	"fmt"
	"os"
)

// Inputs are the user-supplied paths checked before a conversion starts.
type Inputs struct {
	MainFile  string
	FigureDir string
	Flattener string // empty when the main document is already flat
	AuxFile   string // empty when the bibliography step is disabled
}

// Validate checks every input and returns all problems joined together,
// or nil when the conversion can start.
func Validate(in Inputs) error {
	var errs []error

	if info, err := os.Stat(in.MainFile); err != nil {
		errs = append(errs, fmt.Errorf("main LaTeX file %q does not exist", in.MainFile))
	} else if info.IsDir() {
		errs = append(errs, fmt.Errorf("main LaTeX file %q is a directory", in.MainFile))
	}

	if in.AuxFile != "" {
		if _, err := os.Stat(in.AuxFile); err != nil {
			errs = append(errs, fmt.Errorf("auxiliary file %q does not exist, compile the document first", in.AuxFile))
		}
	}

	if info, err := os.Stat(in.FigureDir); err != nil {
		errs = append(errs, fmt.Errorf("figure path %q does not exist", in.FigureDir))
	} else if !info.IsDir() {
		errs = append(errs, fmt.Errorf("figure path %q is not a directory", in.FigureDir))
	}

	if in.Flattener != "" {
		if info, err := os.Stat(in.Flattener); err != nil {
			errs = append(errs, fmt.Errorf("flattening tool %q does not exist", in.Flattener))
		} else if info.IsDir() {
			errs = append(errs, fmt.Errorf("flattening tool %q is a directory, not an executable file", in.Flattener))
		}
	}

	return errors.Join(errs...)
}
