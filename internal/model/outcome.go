package model

// DownloadOutcome records the terminal result of downloading one asset.
// Every AssetRecord handed to the download coordinator yields exactly one
// outcome; callers correlate outcomes to records by Name, not position,
// because workers complete in arbitrary order.
type DownloadOutcome struct {
	// Name matches the AssetRecord the outcome belongs to.
	Name string `json:"name"`

	// Success reports whether the asset ended up on disk, either by
	// download or because the file already existed.
	Success bool `json:"success"`

	// Attempts is the number of network attempts actually made.
	// Zero means the file existed before any request was issued.
	Attempts int `json:"attempts"`

	// LastError holds the message of the last failed attempt.
	// Empty on success unless earlier attempts failed before a retry
	// eventually succeeded, in which case it is cleared.
	LastError string `json:"last_error,omitempty"`
}

// Skipped reports whether the outcome was satisfied by a pre-existing file
// without any network traffic.
func (o DownloadOutcome) Skipped() bool {
	return o.Success && o.Attempts == 0
}
