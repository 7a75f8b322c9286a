// Package model defines the data structures shared by the segmentation engine.
//
// This package contains the following main types:
//   - Candidate: An anchor considered for group membership before filtering
//   - Article: A same-host link believed to point at a piece of content
//   - Group: A labeled, ordered set of articles produced by one or more strategies
//   - PageResult: The final, capped answer returned for one page
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The segmenters, the merger, the orchestrator and the report
// writers all need these types, so centralizing them prevents import cycles.
//
// Every value in this package is created and discarded within a single
// segmentation call. Nothing here is persisted.
package model
