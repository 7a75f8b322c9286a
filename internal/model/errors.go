package model

import "errors"

// ErrUnknownMode is returned by ParseMode when the token is not one of
// auto, headings, cluster or pattern.
var ErrUnknownMode = errors.New("unknown segmentation mode: expected auto, headings, cluster or pattern")
