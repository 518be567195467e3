package model

// AssetRecord identifies one downloadable wallpaper discovered during a run.
// It is created by the detail resolver and consumed by the download
// coordinator; once produced it is never modified.
//
// Design decision: We keep the detail page URL alongside the asset URL
// because:
//  1. It makes failure reports traceable back to the page that produced them
//  2. Name derivation is a function of both URLs, so keeping the inputs
//     makes outcomes auditable
//  3. The cost is one string per record
type AssetRecord struct {
	// Name is the file name the asset will be stored under. It is derived
	// deterministically from the detail page URL and is unique within a run.
	// Collisions are tolerated (last write wins) but never expected.
	Name string `json:"name"`

	// SourceURL is the direct URL of the high-resolution image.
	SourceURL string `json:"source_url"`

	// DetailURL is the detail page the asset was resolved from.
	DetailURL string `json:"detail_url,omitempty"`
}

// DiscoveryResult is the ordered set of assets discovered from one archive
// page. Order follows the archive listing, which keeps runs reproducible
// for testing even though download order is not significant.
type DiscoveryResult []AssetRecord

// Names returns the record names in listing order.
func (d DiscoveryResult) Names() []string {
	names := make([]string, len(d))
	for i, rec := range d {
		names[i] = rec.Name
	}
	return names
}
