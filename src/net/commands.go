package net

const (
	// ChainPath is the route that serves the local chain.
	ChainPath = "/chain"
	// SyncPath is the route that accepts a candidate chain.
	SyncPath = "/sync"
)

const (
	// SyncSuccessful is the response body when a submitted chain was adopted.
	SyncSuccessful = "SYNC SUCCESSFUL!"
	// SyncFailed is the response body when a submitted chain was rejected.
	SyncFailed = "SYNC FAILED!"
)

// SyncStatus converts the outcome of a replacement into its wire string.
func SyncStatus(adopted bool) string {
	if adopted {
		return SyncSuccessful
	}
	return SyncFailed
}
