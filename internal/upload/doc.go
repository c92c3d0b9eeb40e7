// Package upload implements the final workflow stage: publishing the
// rendered video to the configured object storage bucket.
package upload
