package sceneplan

// PlanPrompt captures the instructions sent to the configured LLM when
// splitting a narration into scenes. Update this text centrally so every call
// stays in sync.
const PlanPrompt = `You are a video editor planning scene cuts for a narrated video. You receive the narration transcript as a numbered word list and must split it into visual scenes.

Rules:

- Produce 3 to 8 scenes covering the whole narration in order.
- Each scene's "narration" must quote the first few words actually spoken in that scene, copied verbatim from the transcript.
- "start_word" and "end_word" are zero-based indices into the word list.
- "image_prompt" describes a single photographic stock image for the scene. No text overlays, no collages.
- "transition" is one of "crossfade", "fade-to-black", "slide-left", "zoom-in".

You must respond ONLY with a JSON object like:
{"scenes": [{"title": "scene title", "narration": "first spoken words", "image_prompt": "stock photo description", "start_word": 0, "end_word": 14, "transition": "crossfade"}]}

Now plan scenes for this transcript:`
