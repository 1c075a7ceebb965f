// Package dex shapes raw PokéAPI documents into the view models the catalog
// and detail pages render: evolution stage buckets, pagination windows,
// reduced move lists, classified sprites and species summaries.
//
// Everything here is pure: no I/O, no shared state. Missing upstream fields
// fall back to zero values or nil instead of failing.
package dex
