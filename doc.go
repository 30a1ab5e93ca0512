// Package commandarea delineates the command area of a reservoir outlet: the
// land that water released at the outlet can reach by gravity over a digital
// elevation model, optionally widened by a flood level.
//
// What is a command area?
//
//	Starting at the outlet cell, water spreads to any of the 8 neighbours
//	that is not higher than the cell it comes from. The cells reached this
//	way form the default area. A flood level h lifts the water once at the
//	rim of the default area: rim neighbours up to h metres above the rim
//	are admitted, and water keeps running downhill from there.
//
// Under the hood, everything is organized under these subpackages:
//
//	raster/   Grid interface, gonum-backed Dense, Affine, ESRI ASCII I/O, class TIFF
//	command/  outlet resolution, delineation, boundary, flood expansion, stats
//	vector/   region labeling, outline tracing, GeoJSON features
//	batch/    many outlets and flood levels over one grid, with a cached default area
//	store/    output sinks: local directory, memory, S3-compatible bucket
//	config/   HCL run files and environment settings
//
// Quick ASCII example (outlet at the centre, flood level 5):
//
//	10 10 10        F F F
//	10  5 10   →    F D F
//	10 10 10        F F F
//
// The outlet alone is the default area (D); every rim neighbour lies within
// 5 m of it and joins as flood expansion (F).
//
//	go run ./cmd/commandarea -dem dem.asc -lon 80.69 -lat 6.26 -flood 2
package commandarea
