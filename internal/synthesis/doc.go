// Package synthesis implements the narration synthesis stage: the approved
// script is voiced through the TTS service into a narration audio file under
// the project's staging directory.
package synthesis
