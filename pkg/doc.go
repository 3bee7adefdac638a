// Package pkg provides the libraries behind lbcode, a converter from LDraw
// brick models to the LBCode binary layout format.
//
// # Overview
//
// An LDraw model is a text file with one brick placement per line. lbcode
// keeps the 2x4 bricks standing upright in one of four orientations, snaps
// them onto a stud grid and packs the result into a fixed-size binary record
// per brick. The pkg directory is organized into three areas:
//
//  1. [ldraw] and [lbcode] - Format logic (parsing, classification, encoding)
//  2. [pipeline] - Orchestration (validation, caching, statistics)
//  3. [cache], [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The data flow of one conversion:
//
//	.ldr text
//	    ↓
//	[ldraw] package (scan lines, tokenize, parse type-1 lines)
//	    ↓
//	[lbcode] package (classify rotation, map to grid, track bounds)
//	    ↓
//	[lbcode] package (stable sort by z, x, y; pack records)
//	    ↓
//	.lbcode bytes
//
// # Quick Start
//
// Convert a model in one call:
//
//	import "github.com/matzehuels/lbcode/pkg/lbcode"
//
//	f, _ := os.Open("castle.ldr")
//	data, err := lbcode.Convert(f)
//	if err != nil {
//	    // *ldraw.LineError carries the failing line number
//	}
//
// Or go through the pipeline to get caching, warnings and a decoded layout:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := r.Convert(ctx, pipeline.Options{Input: model, FileName: "castle.ldr"})
//	fmt.Println(res.Layout.Width, res.Layout.Height, len(res.Layout.Records))
//
// # Main Packages
//
//   - [ldraw]: line scanner, tokenizer and type-1 line parser
//   - [lbcode]: orientation classifier, grid transform, bounds, encoder and decoder
//   - [pipeline]: Runner tying conversion to the result cache
//   - [cache]: file, redis and null cache backends with key derivation
//   - [errors]: error codes shared by library, CLI and HTTP API
//   - [observability]: conversion, cache and HTTP hooks
//   - [buildinfo]: version information injected at build time
//
// The lbcode command and HTTP service live under cmd/ and internal/.
//
// [ldraw]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/ldraw
// [lbcode]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/lbcode
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lbcode/pkg/buildinfo
package pkg
