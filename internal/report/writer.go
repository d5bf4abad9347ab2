package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Write encodes value to w as "json" or "yaml".
func Write(w io.Writer, format string, value any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(value); err != nil {
			return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to encode json report", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(value); err != nil {
			return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to encode yaml report", err)
		}

		if err := encoder.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to flush yaml report", err)
		}
	default:
		return errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported report format %q", format)
	}

	return nil
}

// WriteFile encodes value into the file at path, replacing any existing content.
func WriteFile(path string, format string, value any) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create report file %s", path)
	}

	if err := Write(file, format, value); err != nil {
		_ = file.Close()

		return err
	}

	if err := file.Close(); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to close report file %s", path)
	}

	return nil
}
