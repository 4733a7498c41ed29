package model

import "math"

const (
	// MinSphereWidthSegments is the smallest accepted number of longitudinal segments.
	MinSphereWidthSegments = 3

	// MinSphereHeightSegments is the smallest accepted number of latitudinal segments.
	MinSphereHeightSegments = 2
)

// SphereGeometry generates a UV sphere centered at the origin.
//
// Vertices form a (widthSegments+1) × (heightSegments+1) grid walked from the north pole (+Y)
// down, with a duplicated seam column so the texture wraps once. The single-triangle pole rows
// skip their degenerate half, giving 6·w·(h-1) indices. Pole texture coordinates are shifted
// half a segment so each pole triangle samples the middle of its column. Segment counts below
// the minimums are raised to them.
//
// Parameters:
//   - radius: sphere radius in model units
//   - widthSegments: longitudinal segments
//   - heightSegments: latitudinal segments
//
// Returns:
//   - []GPUVertex: the vertices
//   - []uint32: triangle indices, counter-clockwise when viewed from outside
func SphereGeometry(radius float32, widthSegments, heightSegments int) ([]GPUVertex, []uint32) {
	w := max(widthSegments, MinSphereWidthSegments)
	h := max(heightSegments, MinSphereHeightSegments)

	vertices := make([]GPUVertex, 0, (w+1)*(h+1))
	grid := make([][]uint32, h+1)
	var index uint32

	for iy := 0; iy <= h; iy++ {
		row := make([]uint32, w+1)
		v := float64(iy) / float64(h)

		var uOffset float64
		switch iy {
		case 0:
			uOffset = 0.5 / float64(w)
		case h:
			uOffset = -0.5 / float64(w)
		}

		sinTheta, cosTheta := math.Sincos(v * math.Pi)
		for ix := 0; ix <= w; ix++ {
			u := float64(ix) / float64(w)
			sinPhi, cosPhi := math.Sincos(u * 2 * math.Pi)

			nx := -cosPhi * sinTheta
			ny := cosTheta
			nz := sinPhi * sinTheta

			vertices = append(vertices, GPUVertex{
				Position: [3]float32{radius * float32(nx), radius * float32(ny), radius * float32(nz)},
				Normal:   [3]float32{float32(nx), float32(ny), float32(nz)},
				TexCoord: [2]float32{float32(u + uOffset), float32(v)},
			})
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, 6*w*(h-1))
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != h-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return vertices, indices
}

// QuadGeometry returns a full-screen quad already in clip space, used to draw the scene backdrop.
// The top-left corner maps to texture coordinate (0, 0).
//
// Returns:
//   - []GPUVertex: four corners
//   - []uint32: two triangles
func QuadGeometry() ([]GPUVertex, []uint32) {
	n := [3]float32{0, 0, 1}
	vertices := []GPUVertex{
		{Position: [3]float32{-1, -1, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{1, -1, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
		{Position: [3]float32{1, 1, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{-1, 1, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}
