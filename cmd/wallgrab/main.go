// Package main provides the entry point for the wallgrab CLI.
//
// Wallgrab downloads Bing daily wallpapers from the community archive.
// It renders the archive listing for a month, follows each detail page
// to the original-resolution image, and downloads everything that is not
// already on disk.
//
// Usage:
//
//	wallgrab fetch 202410
//	wallgrab fetch 202409 202410 --dir ~/Pictures/bing
//
// See --help for all available options.
package main

// main is the entry point for wallgrab.
func main() {
	Execute()
}
