package layout

import "unicode/utf8"

// Size estimation works on approximate character widths rather than real
// font metrics. The canvas renderer draws field rows in a monospace face, so
// a fixed per-rune width is close enough for non-overlapping boxes.
const (
	minEntityWidth  = 160.0
	headerCharWidth = 9.0
	fieldCharWidth  = 7.5
	sidePadding     = 24.0
	headerHeight    = 40.0
	fieldRowHeight  = 26.0
	bottomPadding   = 16.0
	collapsedHeight = 44.0
)

// EstimateSize computes the rectangle for an entity from its display label
// and field list. It is a total function: any input, including an empty
// label and zero fields, yields a finite size.
//
// Width is the maximum of the minimum entity width, the approximate header
// text width, and the widest "name : type" field row. Height is the fixed
// collapsed header height when collapsed, otherwise header plus one row per
// field plus padding.
func EstimateSize(label string, fields []Field, collapsed bool) Size {
	width := minEntityWidth

	if w := float64(utf8.RuneCountInString(label))*headerCharWidth + 2*sidePadding; w > width {
		width = w
	}
	for _, f := range fields {
		runes := utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Type) + 3 // "name : type"
		if w := float64(runes)*fieldCharWidth + 2*sidePadding; w > width {
			width = w
		}
	}

	if collapsed {
		return Size{Width: width, Height: collapsedHeight}
	}
	return Size{
		Width:  width,
		Height: headerHeight + float64(len(fields))*fieldRowHeight + bottomPadding,
	}
}
