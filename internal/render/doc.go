// Package render produces markup for pages whose lists only appear after
// client-side rendering.
//
// The Chrome renderer starts a fresh headless browser for every call,
// navigates to the page, waits for the body to be ready, waits a fixed settle
// delay and returns the outer HTML of the document element. The browser is
// torn down on every exit path. Script execution is disabled unless enabled
// explicitly.
//
// Every failure wraps ErrUnavailable. Callers treat a failed render as
// "no fallback markup" rather than a hard error.
package render
