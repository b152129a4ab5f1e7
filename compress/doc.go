// This file documents algorithm selection; the package doc comment itself
// lives on codec.go.
//
// # Supported Algorithms
//
// **None** (CompressionNone) — no compression; use when the payload is
// already small or incompressible, or when CPU matters more than size.
//
// **Zstandard** (CompressionZstd) — best compression ratio, moderate
// speed. Use for archival/cold-storage payloads and network transmission
// where bandwidth is the bottleneck.
//
// **LZ4** (CompressionLZ4) — fast in both directions, more modest ratio.
// Use on the hot path where latency matters more than size.
//
// # Thread Safety
//
// All Codec implementations here are safe for concurrent use.
package compress
