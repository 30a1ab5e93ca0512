// Package batch runs many command-area computations over one grid.
//
// A batch is a list of Jobs, each naming an outlet and a flood level. Jobs
// sharing an outlet share its default area: the area is delineated once,
// kept in an LRU cache and extended per flood level. Concurrent requests for
// the same outlet collapse into one delineation.
//
// Jobs run on a bounded worker group; the first failure cancels the rest and
// is returned wrapped with the job name.
package batch
