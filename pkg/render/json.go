package render

import (
	"encoding/json"

	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
)

// Meta describes the run that produced a point cloud.
type Meta struct {
	System string
	Seed   uint64
}

type jsonDoc struct {
	System string      `json:"system"`
	Seed   uint64      `json:"seed"`
	Count  int         `json:"count"`
	Bounds *ifs.Rect   `json:"bounds,omitempty"`
	Points []ifs.Point `json:"points"`
}

// RenderJSON encodes points with their run metadata. Bounds are omitted
// for an empty cloud.
func RenderJSON(points []ifs.Point, meta Meta) ([]byte, error) {
	doc := jsonDoc{
		System: meta.System,
		Seed:   meta.Seed,
		Count:  len(points),
		Points: points,
	}
	if doc.Points == nil {
		doc.Points = []ifs.Point{}
	}
	if r := ifs.Bounds(points); !r.Empty() {
		doc.Bounds = &r
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}
