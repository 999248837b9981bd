// Package pagination provides page-based slicing for CLI list output.
//
//   - Params: --page / --page-size flag values and validation
//   - Apply: generic slicing of an ordered result set
//   - Meta: response metadata for paginated JSON output
//
// Pagination never reorders results; pages are cut from the list in the order
// it was received.
package pagination
