package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"

	"terrafields/internal/core"
)

// elevationFile is the on-disk elevation format.
type elevationFile struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Data   []float64 `json:"data"`
}

// LoadElevation reads a {"width","height","data"} JSON elevation grid.
func LoadElevation(path string) (*core.Grid[float64], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read elevation: %w", err)
	}
	var f elevationFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse elevation: %w", err)
	}
	g, err := core.GridFrom(f.Width, f.Height, f.Data)
	if err != nil {
		return nil, fmt.Errorf("load elevation: %w", err)
	}
	return g, nil
}

// SaveElevation writes g in the LoadElevation format.
func SaveElevation(path string, g *core.Grid[float64]) error {
	return atomicWriteJSON(path, elevationFile{Width: g.W, Height: g.H, Data: g.Cells()})
}

// Fetch downloads src into dir and returns the local file path. src may be
// anything go-getter understands: a local path, an http(s) URL, an s3 or gcs
// object, optionally with a checksum query.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("fetch elevation: %w", err)
	}
	dst := filepath.Join(dir, "elevation.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch elevation %s: %w", src, err)
	}
	return dst, nil
}
