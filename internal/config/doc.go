// Package config provides configuration structures and utilities for pagefeed.
// It defines the fetch, render and output options, the tunable constants used
// by the segmentation strategies, and the optional YAML file holding
// site-specific settings such as cookies and admission policies.
package config
