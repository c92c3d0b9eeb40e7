// Package scripting implements the first workflow stage: turning a queued
// topic into a titled narration script via the language model.
package scripting
