package render

import (
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/akeil/xform/internal/logging"
)

// ValidatePDF checks that rs contains a well-formed PDF document.
//
// Validation is relaxed, it accepts the minor deviations from the standard
// that most PDF writers produce.
func ValidatePDF(rs io.ReadSeeker) error {
	conf := pdfcpu.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpu.ValidationRelaxed

	logging.Debug("Validate PDF")
	return api.Validate(rs, conf)
}
