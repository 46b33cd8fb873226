// Package store persists generated worlds and loads elevation input.
package store

import (
	"errors"
	"time"

	"terrafields/internal/fields/quantile"
)

// ErrNotFound is returned when a named world does not exist.
var ErrNotFound = errors.New("world not found")

// Snapshot is the serialised form of a generated world. Grids are row-major;
// Water is Scale times finer than the other layers along both axes.
type Snapshot struct {
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`

	SeaLevel       float64         `json:"sea_level"`
	ElevationBands []quantile.Band `json:"elevation_bands"`
	RiverThreshold float64         `json:"river_threshold"`
	RiverBands     []quantile.Band `json:"river_bands"`
	Passes         int             `json:"passes"`
	Saturated      int             `json:"saturated"`

	Elevation []float64 `json:"elevation"`
	Ocean     []bool    `json:"ocean"`
	Flow      []float64 `json:"flow"`
	Rivers    []bool    `json:"rivers"`
	Wind      []float64 `json:"wind"`

	WaterScale int     `json:"water_scale"`
	Water      []uint8 `json:"water"`
}

// Storage defines the interface for world persistence.
type Storage interface {
	SaveWorld(s *Snapshot) error
	LoadWorld(name string) (*Snapshot, error)
	ListWorlds() ([]string, error)
	Close() error
}
