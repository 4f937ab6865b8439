// Package geom provides the floating-point rectangle and point types used
// to describe window geometry, clip regions and paint translations.
package geom
