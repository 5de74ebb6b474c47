package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"vbhc/common"
	"vbhc/config"
	"vbhc/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	// command line overrides configuration for this run only
	cfg := env.Cfg.Document
	if to := cmd.String("to"); len(to) > 0 {
		mode, err := common.ParseOutputMode(to)
		if err != nil {
			log.Warn("Unknown output mode requested, using configured one", zap.Stringer("mode", cfg.OutputMode), zap.Error(err))
		} else {
			cfg.OutputMode = mode
		}
	}
	if sections := cmd.String("sections"); len(sections) > 0 {
		mode, err := common.ParseSectionMode(sections)
		if err != nil {
			log.Warn("Unknown section mode requested, using configured one", zap.Stringer("sections", cfg.Sections), zap.Error(err))
		} else {
			cfg.Sections = mode
		}
	}

	env.Overwrite = cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("mode", cfg.OutputMode))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, cmd.String("name"), &cfg, log)
}

// process handles the core conversion logic independently of CLI framework.
// "name" when not empty replaces source name used for output file naming, it
// is normally the name of the original scanned document.
func process(ctx context.Context, src, dst, name string, cfg *config.DocumentConfig, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	srcs, srcName, err := loadSources(ctx, src, env.CodePage, log)
	if err != nil {
		return fmt.Errorf("unable to load pages: %w", err)
	}
	if len(name) > 0 {
		srcName = name
	}

	var outputName string

	log.Info("Conversion starting", zap.String("from", srcName), zap.Int("pages", len(srcs)))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	art, err := Export(ctx, srcs, srcName, cfg, env.Rpt, log)
	if err != nil {
		return err
	}
	outputName = filepath.Join(dst, art.Name)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, art.Data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Debug("Document written", zap.String("file", outputName), zap.String("mime", art.MIME), zap.Int("size", len(art.Data)))

	// Store conversion result for debugging
	env.Rpt.Store("result"+filepath.Ext(outputName), outputName)
	return nil
}
