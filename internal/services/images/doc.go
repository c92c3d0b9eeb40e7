// Package images wraps the Pexels photo search API used to source scene
// artwork. Search queries come from the scene plan; downloads land in the
// project staging directory. When no API key is configured the planner skips
// this service entirely and the renderer falls back to gradient cards.
package images
