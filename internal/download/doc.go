// Package download fetches discovered assets to local files.
//
// The coordinator runs a bounded worker pool over the records. Each
// worker is independent: failures are captured in the outcome slice
// instead of being returned, so one dead URL never cancels its
// siblings. Writes go to a temp file in the target directory first and
// are renamed into place only on success, which keeps partially
// downloaded files from ever being mistaken for finished ones. A file
// that already exists is never touched again, making re-runs resume
// where the last one stopped.
package download
