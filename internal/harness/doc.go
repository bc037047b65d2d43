// Package harness runs declarative conformance scenarios against the rule
// engine. A scenario is a YAML file that describes a document fixture, an
// inline rule set, and assertions over the document and report after one
// apply pass.
//
// Every scenario runs against a freshly synthesized DOCX package in a
// private temp directory, so scenarios are hermetic and order-independent.
// The harness drives the real engine entry points (engine.Apply against a
// file on disk), not internal shortcuts: what a scenario passes, the CLI
// would do identically.
//
// Golden scenarios additionally snapshot the resulting document state and
// report as canonical JSON, compared with goldie. Regenerate with:
//
//	go test ./internal/harness -update
package harness
