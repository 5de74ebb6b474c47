// Package convert turns ordered page fragments into Word documents and
// implements "convert" command.
package convert

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vbhc/common"
	"vbhc/config"
	"vbhc/content"
	"vbhc/convert/docx"
	"vbhc/convert/wordhtml"
)

// Artifact is a produced document ready to be saved or sent over the wire.
type Artifact struct {
	// Name is relative output path, normally just a file name. Output name
	// template may add subdirectories.
	Name string
	MIME string
	Data []byte
}

// Export prepares pages and serializes them in the configured output mode.
// No partial artifact is ever returned.
func Export(ctx context.Context, srcs []content.PageSource, srcName string, cfg *config.DocumentConfig, rpt *config.Report, log *zap.Logger) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := content.Prepare(ctx, srcs, srcName, cfg, rpt, log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare pages: %w", err)
	}

	var data []byte
	switch cfg.OutputMode {
	case common.OutputModeDocx:
		data, err = docx.Generate(ctx, c, cfg, log)
	case common.OutputModeDoc:
		data, err = wordhtml.Generate(ctx, c, log)
	default:
		return nil, fmt.Errorf("unsupported output mode %s", cfg.OutputMode)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to generate %s: %w", cfg.OutputMode, err)
	}

	return &Artifact{
		Name: buildOutputPath(c, cfg, log),
		MIME: cfg.OutputMode.MIME(),
		Data: data,
	}, nil
}
