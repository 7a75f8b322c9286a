// Package dom exposes a small query capability over parsed HTML.
//
// The segmenters never touch a markup library directly. They depend on the
// Analyzer and Element interfaces defined here, which offer element selection,
// text, attributes and ancestor lookup. The only implementation is backed by
// goquery, which in turn uses golang.org/x/net/html for parsing.
//
// Design decision: We hide goquery behind interfaces because:
//  1. Each segmenter can be tested against hand-written markup without caring
//     about selector engine quirks
//  2. The parsed document is shared read-only between concurrently running
//     segmenters, and the interface makes that read-only contract explicit
//  3. A different DOM backend can be swapped in without touching the strategies
//
// # Usage
//
//	doc, err := dom.Parse(markup)
//	for _, a := range doc.Query("a[href]") {
//	    href, _ := a.Attr("href")
//	    fmt.Println(a.Text(), href)
//	}
package dom
