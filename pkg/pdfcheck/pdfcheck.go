// Package pdfcheck validates PDF figures before they are copied into a submission.
package pdfcheck

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validate checks that path is a well-formed PDF. Files with another extension
// are accepted without inspection.
func Validate(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("invalid PDF %s: %w", filepath.Base(path), err)
	}
	return nil
}
