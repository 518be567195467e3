// Package model defines the core data types shared across wallgrab.
//
// The types here are deliberately free of behavior beyond construction and
// summarization: discovery produces AssetRecords, downloading produces
// DownloadOutcomes, and a RunReport ties both together for reporting.
// Keeping the types in one dependency-free package lets every other
// package (resolvers, orchestrator, coordinator, report writers) share
// them without import cycles.
package model
