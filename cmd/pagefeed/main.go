// Package main provides the entry point for the pagefeed CLI.
//
// pagefeed splits a web page into groups of article links, the way a
// reader would see "News", "Notices" or "Press releases" sections, so each
// group can be followed as a feed.
//
// Usage:
//
//	pagefeed segment <url>...
//	pagefeed compare <url>
//
// See --help for all available options.
package main

// main is the entry point for pagefeed.
func main() {
	Execute()
}
