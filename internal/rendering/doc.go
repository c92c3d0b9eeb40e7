// Package rendering implements the render stage: the persisted scene plan
// and transcript become a frame-addressable composition, and ffmpeg encodes
// it into the final video file.
package rendering
