// Package content validates and prepares ordered page fragments for output
// generators.
package content

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"vbhc/common"
	"vbhc/config"
	"vbhc/fragment"
)

// ErrNoPages is returned when there is nothing to convert.
var ErrNoPages = errors.New("no pages to convert")

// PageSource is a single page as handed over by the recognition layer.
type PageSource struct {
	// Index is 1-based position of the page in the original document.
	Index       int
	Orientation common.Orientation
	// Fragment is HTML produced for the page, it may be malformed or empty.
	Fragment string
}

// Page is a validated page with parsed content and its own geometry.
type Page struct {
	Index       int
	Orientation common.Orientation
	Fragment    string
	Nodes       []fragment.Node
	Geometry    Geometry
}

// Content is an ordered sequence of pages ready for output generation.
type Content struct {
	SrcName string
	Title   string
	Paper   common.Paper
	Pages   []*Page
}

// Prepare validates page sources, orders them by index and parses every page
// fragment. Indices must be unique and form contiguous sequence starting with
// 1. Errors name the offending page.
func Prepare(ctx context.Context, srcs []PageSource, srcName string, cfg *config.DocumentConfig, rpt *config.Report, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		return nil, ErrNoPages
	}

	ordered := slices.Clone(srcs)
	slices.SortStableFunc(ordered, func(a, b PageSource) int {
		return cmp.Compare(a.Index, b.Index)
	})

	c := &Content{
		SrcName: srcName,
		Title:   documentTitle(cfg.Title, srcName),
		Paper:   cfg.Paper,
		Pages:   make([]*Page, 0, len(ordered)),
	}

	for i, src := range ordered {
		if err := checkIndex(ordered, i); err != nil {
			return nil, err
		}
		if src.Orientation != common.OrientationPortrait && src.Orientation != common.OrientationLandscape {
			return nil, fmt.Errorf("page %d: invalid orientation %s", src.Index, src.Orientation)
		}

		nodes, err := fragment.Parse(src.Fragment)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", src.Index, err)
		}

		page := &Page{
			Index:       src.Index,
			Orientation: src.Orientation,
			Fragment:    src.Fragment,
			Nodes:       nodes,
			Geometry:    GeometryFor(src.Orientation, cfg.Paper),
		}
		c.Pages = append(c.Pages, page)

		log.Debug("Page prepared",
			zap.Int("page", page.Index),
			zap.Stringer("orientation", page.Orientation),
			zap.Int("nodes", len(nodes)))

		rpt.StoreData(fmt.Sprintf("pages/%03d.html", page.Index), []byte(src.Fragment))
		rpt.StoreData(fmt.Sprintf("pages/%03d.tree.txt", page.Index), []byte(fragment.Dump(nodes)))
	}
	return c, nil
}

func checkIndex(ordered []PageSource, i int) error {
	idx := ordered[i].Index
	switch {
	case idx < 1:
		return fmt.Errorf("page %d: page index must start with 1", idx)
	case i > 0 && ordered[i-1].Index == idx:
		return fmt.Errorf("page %d: duplicate page index", idx)
	case idx != i+1:
		return fmt.Errorf("page %d: page index out of sequence, page %d is missing", idx, i+1)
	}
	return nil
}

// documentTitle returns configured title or stem of the source name.
func documentTitle(title, srcName string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	base := filepath.Base(srcName)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
