package config

// SelectorPolicy describes how the resolvers locate links in rendered
// markup. The defaults are tuned to the Bing wallpaper archive's markup,
// which can change independently of this tool, so the whole policy is
// overridable from the .wallgrab file rather than baked into code.
type SelectorPolicy struct {
	// Listing controls how detail-page links are found on the archive page.
	Listing ListingPolicy `yaml:"listing,omitempty"`

	// Detail controls how the downloadable asset link is found on a
	// detail page.
	Detail DetailPolicy `yaml:"detail,omitempty"`
}

// ListingPolicy holds the ordered fallback strategies for the archive
// listing. Strategies are tried in struct-field order; the first one that
// yields at least one link wins, later ones are never merged in.
type ListingPolicy struct {
	// ContainerClasses are CSS class names of grid containers whose
	// anchors are collected first.
	ContainerClasses []string `yaml:"containerClasses,omitempty"`

	// HrefSubstrings are substrings matched against anchor hrefs when no
	// container matched (the detail-link pattern search).
	HrefSubstrings []string `yaml:"hrefSubstrings,omitempty"`

	// PathSubstrings are substrings for the final broad path search.
	PathSubstrings []string `yaml:"pathSubstrings,omitempty"`

	// WaitSelector is the selector the renderer waits for before the
	// listing is read. Empty disables the wait.
	WaitSelector string `yaml:"waitSelector,omitempty"`
}

// DetailPolicy holds the ordered selector chain for the asset link on a
// detail page. Explicit download affordances are preferred over
// high-resolution URL markers, which are preferred over bare extension
// matches.
type DetailPolicy struct {
	// PreferDownloadAttr puts anchors carrying a download attribute at
	// the front of the chain.
	PreferDownloadAttr *bool `yaml:"preferDownloadAttr,omitempty"`

	// HrefMarkers are substrings that mark a high-resolution asset URL,
	// tried in order after the download attribute.
	HrefMarkers []string `yaml:"hrefMarkers,omitempty"`

	// Extensions are the asset suffixes tried last, in order.
	Extensions []string `yaml:"extensions,omitempty"`

	// DefaultExtension is appended to derived names when the asset URL
	// carries no extension of its own.
	DefaultExtension string `yaml:"defaultExtension,omitempty"`
}

// PrefersDownloadAttr reports whether anchors with a download attribute
// head the chain. Unset means yes.
func (p DetailPolicy) PrefersDownloadAttr() bool {
	return p.PreferDownloadAttr == nil || *p.PreferDownloadAttr
}

// DefaultSelectorPolicy returns the policy tuned to the archive site.
func DefaultSelectorPolicy() SelectorPolicy {
	preferDownload := true
	return SelectorPolicy{
		Listing: ListingPolicy{
			ContainerClasses: []string{"grid", "list-bing"},
			HrefSubstrings:   []string{"detail"},
			PathSubstrings:   []string{"wallpaper"},
			WaitSelector:     ".grid",
		},
		Detail: DetailPolicy{
			PreferDownloadAttr: &preferDownload,
			HrefMarkers:        []string{"original", "UHD"},
			Extensions:         []string{".jpg", ".png"},
			DefaultExtension:   ".jpg",
		},
	}
}

// withDefaults fills any unset fields from the default policy.
func (p SelectorPolicy) withDefaults() SelectorPolicy {
	def := DefaultSelectorPolicy()
	if len(p.Listing.ContainerClasses) == 0 {
		p.Listing.ContainerClasses = def.Listing.ContainerClasses
	}
	if len(p.Listing.HrefSubstrings) == 0 {
		p.Listing.HrefSubstrings = def.Listing.HrefSubstrings
	}
	if len(p.Listing.PathSubstrings) == 0 {
		p.Listing.PathSubstrings = def.Listing.PathSubstrings
	}
	if p.Listing.WaitSelector == "" {
		p.Listing.WaitSelector = def.Listing.WaitSelector
	}
	if p.Detail.PreferDownloadAttr == nil {
		p.Detail.PreferDownloadAttr = def.Detail.PreferDownloadAttr
	}
	if len(p.Detail.HrefMarkers) == 0 {
		p.Detail.HrefMarkers = def.Detail.HrefMarkers
	}
	if len(p.Detail.Extensions) == 0 {
		p.Detail.Extensions = def.Detail.Extensions
	}
	if p.Detail.DefaultExtension == "" {
		p.Detail.DefaultExtension = def.Detail.DefaultExtension
	}
	return p
}
