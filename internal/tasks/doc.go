// Package tasks orchestrates multi-request read operations for the CLI and TUI.
//
// [CatalogEngine] owns the fan-out policy: per-movie poster and review
// fetches run under a bounded worker pool with a rate limiter on external
// lookups, and every item resolves independently so partial failure never
// blocks the rest of the catalog. Progress flows through a channel that is
// written with a non-blocking send, so slow consumers drop updates instead
// of stalling enrichment.
package tasks
