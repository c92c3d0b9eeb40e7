// Package textutil provides text processing utilities for tokenization and
// filename sanitization.
//
// The primary use cases are:
//   - Splitting narration text into significant lowercase tokens for
//     transcript matching
//   - Sanitizing filenames and path segments for safe filesystem use
//
// The tokenization process lowercases text, splits on non-alphanumeric
// characters, and filters tokens shorter than 3 characters.
package textutil
