package reporting

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gridbook/pkg/openf1"
)

// AssetResolver maps a driver identity and headshot URL to a local image
// path. Implementations may cache; a false result means render without an
// image.
type AssetResolver interface {
	Resolve(ctx context.Context, id, url string) (string, bool)
}

// Row is one fully resolved table row, ready for any output format.
type Row struct {
	Asset string   // local image path, empty when no image is available
	Cells []string // one entry per schema column, in schema order
	Fill  RGB
}

// Builder turns driver records into rows using the shared column schema.
type Builder struct {
	columns []Column
	assets  AssetResolver
}

// NewBuilder creates a row builder. A nil resolver builds rows without
// images, which is how the CSV path and the no-headshots mode run.
func NewBuilder(assets AssetResolver) *Builder {
	return &Builder{columns: Columns(), assets: assets}
}

// EntityID returns the identity a driver's thumbnail is cached under: the
// source id when present, a number-derived fallback otherwise. Drivers with
// neither collapse onto the placeholder and may share a cache slot.
func EntityID(d openf1.Driver) string {
	if d.ID != nil && *d.ID != "" {
		return *d.ID
	}
	if d.Number != nil {
		return fmt.Sprintf("unknown_%d", *d.Number)
	}
	return NA
}

// Build renders one driver into a row. Rows never fail: bad colors fall
// back to the default fill and missing images leave Asset empty.
func (b *Builder) Build(ctx context.Context, d openf1.Driver) Row {
	var colour string
	if d.TeamColour != nil {
		colour = *d.TeamColour
	}
	fill, err := ResolveFill(colour)
	if err != nil {
		log.Warn().Err(err).Str("driver", EntityID(d)).Msg("Unparseable team colour, using default fill")
	}

	row := Row{Fill: fill, Cells: make([]string, 0, len(b.columns))}
	for _, col := range b.columns {
		row.Cells = append(row.Cells, col.Value(d))
	}

	if b.assets != nil && d.HeadshotURL != nil && *d.HeadshotURL != "" {
		if path, ok := b.assets.Resolve(ctx, EntityID(d), *d.HeadshotURL); ok {
			row.Asset = path
		}
	}
	return row
}

// BuildAll renders the whole roster, preserving input order.
func (b *Builder) BuildAll(ctx context.Context, drivers []openf1.Driver) []Row {
	rows := make([]Row, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, b.Build(ctx, d))
	}
	return rows
}
