// Package strategy provides built-in centroid seeding strategies.
//
// A seeding strategy picks the k initial centroids of a clustering job. The
// package includes three built-in strategies:
//
//   - Random: k uniform draws with replacement (default)
//   - Hashed: k deterministic draws derived from a seed via XXH3
//   - Stride: k evenly spaced points, no duplicates
//
// # Strategy Selection Guide
//
// Random:
//   - Default behavior; duplicate picks are allowed and repaired by the engine
//   - Time-seeded unless WithSeed is given
//
// Hashed:
//   - Use when runs must be reproducible across processes
//   - Same batch length, k and seed always give the same picks
//
// Stride:
//   - Use for spatially ordered inputs (scans, grids) where evenly spaced picks
//     already cover the cloud
//   - Never picks the same index twice
//
// Custom strategies can be implemented by satisfying the types.SeedStrategy interface.
package strategy
