// Package conversion implements EditKit's bidirectional tree-conversion
// engine: upcast (view → model) and downcast (model attribute changes →
// view mutations).
//
// # Dispatch
//
// Conversion is driven by named events: "element:<tag>" and "text" for
// upcast, "attribute:<key>:<type>" for downcast. Handlers are held in an
// explicit ordered list; there is no global registration table. For each
// event the dispatcher invokes matching handlers in registration order
// and stops at the first one that commits a result. A handler that
// cannot convert simply returns without side effects, leaving the event
// open for later handlers or the caller's fallback.
//
// # Consumables
//
// Independently authored handlers may compete for the same node. The
// consumable gates (ViewConsumable, ModelConsumable) are the cooperative
// lock between them: each (node, feature) pair may be claimed exactly
// once per conversion pass. Handlers must Test before doing any
// non-reversible work and Consume immediately before mutating output, so
// a failing handler never leaves partial state. Consume is all-or-nothing
// and reports a typed result instead of panicking on double claims.
//
// Every conversion pass runs single-threaded to completion with fresh
// gate state; passes are independent and idempotent.
package conversion
