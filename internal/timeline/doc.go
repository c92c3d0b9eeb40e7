// Package timeline renders a narrated video timeline as a pure function of
// the frame counter.
//
// A Composition is built once from aligned scenes and a word-level
// transcript; evaluating any frame yields the exact layered visual state:
// background scene layers with cross-fade opacity and Ken-Burns motion (or a
// deterministic gradient card when a scene has no image), plus a
// karaoke-highlighted caption overlay. Frames may be evaluated out of order
// or in parallel; the only sequential element, the last active caption line,
// travels explicitly as a hint value rather than hidden state.
//
// Layer z-order is part of the output contract: background layers are
// emitted in ascending scene index and the compositor must draw later
// entries on top, otherwise cross-fades invert.
package timeline
