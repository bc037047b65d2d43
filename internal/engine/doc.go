// Package engine applies declarative formatting rules to documents.
//
// One Apply() is a single synchronous pass over one document:
//
//  1. Load and filter enabled rules; declaration order is significant.
//  2. Resolve the session (engine-owned vs. bound to a live editor).
//  3. Run every document-scope replace rule exactly once, in order.
//  4. Enumerate paragraphs once (body, then table cells recursively);
//     for each, evaluate every paragraph-scope rule in order. Effects are
//     cumulative: a paragraph may satisfy several rules, and a text
//     replacement is visible to later rules in the same pass.
//  5. Persist through the session's ownership-aware protocol.
//
// The pass is deliberately single-threaded per document: replacements
// change text that later rules must see, so there is no safe paragraph-
// level parallelism. Scaling happens at the process level, across
// different documents; the session manager's live-session check keeps two
// invocations from fighting over the same open file.
//
// Failures of one rule on one paragraph are logged and counted, never
// fatal. The changed flag is a monotonic OR over every mutation, threaded
// through return values so concurrent process-level invocations stay
// independent, and the only disk write is the final persist: a run that
// dies mid-pass leaves the on-disk document byte-identical to its pre-run
// state.
package engine
