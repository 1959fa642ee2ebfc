// Package provider wraps external classification backends behind a
// uniform Adapter interface and tracks per-provider usage counters.
//
// One concrete adapter exists per backend (Gemini, OpenAI, Anthropic and a
// deterministic mock). Adapters translate a ticket into the provider's API
// call, apply the classification prompt and map transport or API failures
// into a typed ClassifyError so the router can decide whether to fall back
// or disable the provider.
package provider
