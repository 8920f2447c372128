package core

import (
	"strconv"
	"strings"
)

// Source column names of the Shopify image gallery rows.
const (
	handleColumn        = "Handle"
	imageSourceColumn   = "Image Src"
	imagePositionColumn = "Image Position"
)

// Image positions outside this range are ignored while indexing.
const (
	minImagePosition = 1
	maxImagePosition = 5
)

// ImageIndex maps a product handle to its gallery images by position. Shopify
// exports spread a product's images across rows, each carrying the handle, an
// image URL and a 1-based position; the index collapses them so any variant
// row of the product can look its images up.
type ImageIndex map[string]map[int]string

// URL returns the image URL for a handle at a gallery position, or "" when
// the product has no image there.
func (ix ImageIndex) URL(handle string, pos int) string {
	return ix[handle][pos]
}

// BuildImageIndex scans the whole table once and gathers every handle's
// gallery. The first URL seen for a handle/position pair wins; later rows
// repeating the position are ignored. Rows with a blank handle, a blank URL
// or an unparsable position contribute nothing.
func BuildImageIndex(t *Table) ImageIndex {
	handles := t.Resolve(handleColumn)
	sources := t.Resolve(imageSourceColumn)
	positions := t.Resolve(imagePositionColumn)

	ix := make(ImageIndex)
	if handles == nil || sources == nil || positions == nil {
		return ix
	}

	for i := 0; i < t.RowCount(); i++ {
		handle := cellAt(handles, i)
		src := cellAt(sources, i)
		if handle == "" || src == "" {
			continue
		}
		pos, ok := parsePosition(cellAt(positions, i))
		if !ok {
			continue
		}
		gallery := ix[handle]
		if gallery == nil {
			gallery = make(map[int]string)
			ix[handle] = gallery
		}
		if _, taken := gallery[pos]; !taken {
			gallery[pos] = src
		}
	}
	return ix
}

// parsePosition reads a gallery position cell. Exports stringify positions
// inconsistently ("1" and "1.0" both occur), so the cell is parsed as a float
// and truncated, then bounds-checked.
func parsePosition(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	pos := int(f)
	if pos < minImagePosition || pos > maxImagePosition {
		return 0, false
	}
	return pos, true
}
