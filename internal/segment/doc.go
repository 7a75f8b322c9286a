// Package segment implements the strategies that split a page into groups of
// article links.
//
// Each strategy is a Segmenter working on a read-only Page:
//   - Heading groups the links that follow an h1..h3 heading
//   - Cluster groups links sharing a container class and a path prefix
//   - Pattern groups links sharing their first two URL path segments
//
// Every strategy only considers links on the page's own host. That filter is
// applied once, when candidates are collected, so no later stage can emit a
// cross-host article. Segmenters never mutate the page and may run in
// parallel on the same Page.
package segment
