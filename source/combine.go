package source

import (
	"fmt"

	"github.com/arloliu/cloudlod/types"
)

// Combine zips parallel position and color slices into a PointBatch.
//
// Colors are clamped into [0, 1]. A nil colors slice is allowed and yields
// opaque white points.
//
// Parameters:
//   - positions: Point positions
//   - colors: Point colors, same length as positions, or nil
//
// Returns:
//   - types.PointBatch: Combined batch in input order
//   - error: ErrLengthMismatch when the lengths differ
//
// Example:
//
//	batch, err := source.Combine(scan.Positions, scan.Colors)
func Combine(positions []types.Vec3, colors []types.Color) (types.PointBatch, error) {
	if colors != nil && len(colors) != len(positions) {
		return nil, fmt.Errorf("%w: %d positions, %d colors", types.ErrLengthMismatch, len(positions), len(colors))
	}

	white := types.Color{R: 1, G: 1, B: 1, A: 1}
	batch := make(types.PointBatch, len(positions))
	for i, p := range positions {
		c := white
		if colors != nil {
			c = colors[i].Clamp()
		}
		batch[i] = types.Point{Position: p, Color: c}
	}

	return batch, nil
}
