package world

import (
	"slices"
	"time"

	"terrafields/internal/fields/watergrid"
	"terrafields/internal/store"
)

// Snapshot copies w into its persisted form.
func (w *World) Snapshot(name string, now time.Time) *store.Snapshot {
	water := make([]uint8, len(w.Water.Cells()))
	for i, s := range w.Water.Cells() {
		water[i] = uint8(s)
	}
	return &store.Snapshot{
		Name:           name,
		Width:          w.Elevation.W,
		Height:         w.Elevation.H,
		Seed:           w.Seed,
		CreatedAt:      now.UTC(),
		SeaLevel:       w.SeaLevel,
		ElevationBands: w.ElevationBands.Bands(),
		RiverThreshold: w.RiverThreshold,
		RiverBands:     w.RiverBands.Bands(),
		Passes:         w.Passes,
		Saturated:      w.Hydrology.Saturated,
		Elevation:      slices.Clone(w.Elevation.Cells()),
		Ocean:          slices.Clone(w.Ocean.Cells()),
		Flow:           slices.Clone(w.Flow.Cells()),
		Rivers:         slices.Clone(w.Rivers.Cells()),
		Wind:           slices.Clone(w.Wind.Cells()),
		WaterScale:     watergrid.Scale,
		Water:          water,
	}
}
