// Package sceneplan asks the LLM to break a narration transcript into scene
// proposals. Proposals are untrusted: word indices may be out of range and
// narration snippets may paraphrase, so the align package grounds them
// against the real transcript afterwards.
package sceneplan
