package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"vbhc/config"
	"vbhc/content"
)

const defaultStem = "document"

// buildOutputPath returns output file path relative to destination
// directory. It uses either default naming scheme (source stem followed by
// configured suffix) or user-defined template. Path is cleaned up and if
// requested transliterated.
func buildOutputPath(c *content.Content, cfg *config.DocumentConfig, log *zap.Logger) string {
	defaultFile := buildDefaultFileName(c.SrcName, cfg)

	if cfg.OutputNameTemplate == "" {
		return defaultFile
	}

	expandedName := expandOutputNameTemplate(c, cfg, log)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return defaultFile
	}

	if name := assemblePathWithSubdirs(expandedName, cfg); name != "" {
		return name
	}
	return defaultFile
}

func sourceStem(srcName string) string {
	base := filepath.Base(srcName)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func buildDefaultFileName(srcName string, cfg *config.DocumentConfig) string {
	stem := sourceStem(srcName)
	if stem == "" {
		stem = defaultStem
	}
	name := cleanPathSegment(stem+cfg.OutputSuffix, cfg)
	if name == "" {
		name = defaultStem
	}
	return name + cfg.OutputMode.Ext()
}

func expandOutputNameTemplate(c *content.Content, cfg *config.DocumentConfig, log *zap.Logger) string {
	expandedName, err := expandTemplate(c, config.OutputNameTemplateFieldName, cfg.OutputNameTemplate, cfg)
	if err != nil {
		log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into relative output
// path, cleaning and transliterating segments as needed. Segments which
// become empty after cleaning are dropped.
func assemblePathWithSubdirs(expandedName string, cfg *config.DocumentConfig) string {
	segments := make([]string, 0, 8)
	for _, segment := range splitPath(expandedName) {
		if segment == "." || segment == ".." {
			continue
		}
		if s := cleanPathSegment(segment, cfg); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	segments[len(segments)-1] += cfg.OutputMode.Ext()
	return filepath.Join(segments...)
}

func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, cfg *config.DocumentConfig) string {
	if cfg.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
