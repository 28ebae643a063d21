package geometry

import gomath "math"

// Box returns an axis-aligned box centred on the origin with one quad per face.
func Box(width, height, depth float32) *Mesh {
	m := &Mesh{Name: "box"}
	// u, v, w are axis indices; the face lies at w = ±depth/2.
	m.boxFace(2, 1, 0, -1, -1, depth, height, width)  // +x
	m.boxFace(2, 1, 0, 1, -1, depth, height, -width)  // -x
	m.boxFace(0, 2, 1, 1, 1, width, depth, height)    // +y
	m.boxFace(0, 2, 1, 1, -1, width, depth, -height)  // -y
	m.boxFace(0, 1, 2, 1, -1, width, height, depth)   // +z
	m.boxFace(0, 1, 2, -1, -1, width, height, -depth) // -z
	m.ComputeBounds()
	return m
}

func (m *Mesh) boxFace(u, v, w int, udir, vdir, width, height, depth float32) {
	base := uint32(len(m.Vertices))
	nw := float32(1)
	if depth < 0 {
		nw = -1
	}
	for iy := 0; iy <= 1; iy++ {
		y := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			x := float32(ix)*width - width/2
			var vx Vertex
			vx.Position[u] = x * udir
			vx.Position[v] = y * vdir
			vx.Position[w] = depth / 2
			vx.Normal[w] = nw
			vx.TexCoord = [2]float32{float32(ix), 1 - float32(iy)}
			m.Vertices = append(m.Vertices, vx)
		}
	}
	a, b, c, d := base, base+2, base+3, base+1
	m.Indices = append(m.Indices, a, b, d, b, c, d)
}

// Plane returns a width x height grid in the XY plane facing +Z, subdivided
// into segX x segY cells. Subdivision matters for displacement mapping.
func Plane(width, height float32, segX, segY int) *Mesh {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}
	cols := segX + 1
	segW := width / float32(segX)
	segH := height / float32(segY)

	m := &Mesh{
		Name:     "plane",
		Vertices: make([]Vertex, 0, cols*(segY+1)),
		Indices:  make([]uint32, 0, segX*segY*6),
	}
	for iy := 0; iy <= segY; iy++ {
		y := height/2 - float32(iy)*segH
		for ix := 0; ix <= segX; ix++ {
			x := float32(ix)*segW - width/2
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{x, y, 0},
				Normal:   [3]float32{0, 0, 1},
				TexCoord: [2]float32{float32(ix) / float32(segX), 1 - float32(iy)/float32(segY)},
			})
		}
	}
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	m.ComputeBounds()
	return m
}

// Sphere returns a UV sphere.
func Sphere(radius float32, widthSeg, heightSeg int) *Mesh {
	if widthSeg < 3 {
		widthSeg = 3
	}
	if heightSeg < 2 {
		heightSeg = 2
	}
	m := &Mesh{Name: "sphere"}
	grid := make([][]uint32, heightSeg+1)

	for iy := 0; iy <= heightSeg; iy++ {
		v := float32(iy) / float32(heightSeg)
		// Shift pole UVs to the middle of their segment.
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSeg)
		case heightSeg:
			uOffset = -0.5 / float32(widthSeg)
		}
		row := make([]uint32, widthSeg+1)
		for ix := 0; ix <= widthSeg; ix++ {
			u := float32(ix) / float32(widthSeg)
			phi := float64(u) * 2 * gomath.Pi
			theta := float64(v) * gomath.Pi

			p := [3]float32{
				float32(-float64(radius) * gomath.Cos(phi) * gomath.Sin(theta)),
				float32(float64(radius) * gomath.Cos(theta)),
				float32(float64(radius) * gomath.Sin(phi) * gomath.Sin(theta)),
			}
			row[ix] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, Vertex{
				Position: p,
				Normal:   normalize(p),
				TexCoord: [2]float32{u + uOffset, 1 - v},
			})
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSeg; iy++ {
		for ix := 0; ix < widthSeg; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSeg-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	m.ComputeBounds()
	return m
}

// Cylinder returns a (possibly tapered) cylinder along Y centred on the
// origin. A zero top radius gives a cone; four radial segments give a
// square pyramid.
func Cylinder(radiusTop, radiusBottom, height float32, radialSeg, heightSeg int, openEnded bool) *Mesh {
	if radialSeg < 3 {
		radialSeg = 3
	}
	if heightSeg < 1 {
		heightSeg = 1
	}
	m := &Mesh{Name: "cylinder"}
	halfH := height / 2
	slope := (radiusBottom - radiusTop) / height

	rows := make([][]uint32, heightSeg+1)
	for y := 0; y <= heightSeg; y++ {
		v := float32(y) / float32(heightSeg)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		row := make([]uint32, radialSeg+1)
		for x := 0; x <= radialSeg; x++ {
			u := float32(x) / float32(radialSeg)
			theta := float64(u) * 2 * gomath.Pi
			sin, cos := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))

			row[x] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{radius * sin, -v*height + halfH, radius * cos},
				Normal:   normalize([3]float32{sin, slope, cos}),
				TexCoord: [2]float32{u, 1 - v},
			})
		}
		rows[y] = row
	}
	for x := 0; x < radialSeg; x++ {
		for y := 0; y < heightSeg; y++ {
			a := rows[y][x]
			b := rows[y+1][x]
			c := rows[y+1][x+1]
			d := rows[y][x+1]
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}

	if !openEnded {
		if radiusTop > 0 {
			m.cylinderCap(radiusTop, halfH, radialSeg, true)
		}
		if radiusBottom > 0 {
			m.cylinderCap(radiusBottom, halfH, radialSeg, false)
		}
	}
	m.ComputeBounds()
	return m
}

func (m *Mesh) cylinderCap(radius, halfH float32, radialSeg int, top bool) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	centerStart := uint32(len(m.Vertices))
	for x := 1; x <= radialSeg; x++ {
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{0, halfH * sign, 0},
			Normal:   [3]float32{0, sign, 0},
			TexCoord: [2]float32{0.5, 0.5},
		})
	}
	ringStart := uint32(len(m.Vertices))
	for x := 0; x <= radialSeg; x++ {
		theta := float64(x) / float64(radialSeg) * 2 * gomath.Pi
		sin, cos := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{radius * sin, halfH * sign, radius * cos},
			Normal:   [3]float32{0, sign, 0},
			TexCoord: [2]float32{cos*0.5 + 0.5, sin*0.5*sign + 0.5},
		})
	}
	for x := uint32(0); x < uint32(radialSeg); x++ {
		c := centerStart + x
		i := ringStart + x
		if top {
			m.Indices = append(m.Indices, i, i+1, c)
		} else {
			m.Indices = append(m.Indices, i+1, i, c)
		}
	}
}

func sqrt(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
