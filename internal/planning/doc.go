// Package planning implements the scene planning stage. The language model
// proposes scenes over the transcript, the proposals are snapped to word
// timings, and stock imagery is attached where the image service finds a
// match. Scenes without imagery keep their gradient fallback.
package planning
