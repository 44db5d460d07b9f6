// Package geom provides the two-dimensional point type and the arithmetic
// and distance primitives shared by the clustering engines.
//
// Points are plain values. Every operation returns a new Point and never
// mutates its operands, so points can be shared freely between goroutines.
//
// # Usage
//
//	a := geom.Point{X: 0, Y: 0}
//	b := geom.Point{X: 3, Y: 4}
//	d := geom.Distance(a, b) // 5
//	m, err := geom.Mean([]geom.Point{a, b})
package geom
