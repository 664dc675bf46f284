// Package source provides built-in point source implementations.
//
// Point sources supply the batch a Field clusters. The package includes:
//
//   - Static: Fixed in-memory batch that can be swapped with Update
//   - Func: Adapter turning a function into a source
//   - Combine: Helper zipping parallel position and color slices into a batch
//
// Custom sources can be implemented by satisfying the types.PointSource interface.
package source
