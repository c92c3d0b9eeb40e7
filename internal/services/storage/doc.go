// Package storage uploads finished videos to Supabase Storage buckets and
// reports the public object URL back to the queue.
package storage
