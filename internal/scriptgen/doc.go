// Package scriptgen turns a topic into a narration script via the LLM.
// The model returns a title plus the narration text; the narration feeds the
// synthesis stage verbatim.
package scriptgen
