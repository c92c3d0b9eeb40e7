// Package llm wraps the OpenRouter chat completion API used for script and
// scene plan generation.
//
// The client speaks JSON-only completions and is deliberately tolerant of
// provider quirks: markdown code fences around payloads, streaming-style
// delta responses returned for non-streaming requests, and content delivered
// through tool call arguments. Transient failures (429, 5xx, timeouts, empty
// content) are retried with exponential backoff, honoring Retry-After when
// the provider sends one.
package llm
