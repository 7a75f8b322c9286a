// Package pipeline runs the segmentation state machine for one page.
//
// A segmentation call moves through fixed stages: fetch, static extraction,
// fallback rendering and formatting. Each stage is a Step that receives the
// Run and advances its State. The Engine assembles the steps from injected
// collaborators (fetcher, renderer, segmenters, title inferrer, clock and
// logger) so every stage can be tested without a network or a browser.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. Each state of the machine maps to one step with one log line
// 2. Fallback rendering is a step that only acts when extraction found nothing
// 3. Comparison runs reuse the same steps without the fetch stage
//
// BatchProcessor segments many URLs with bounded concurrency using errgroup.
package pipeline
