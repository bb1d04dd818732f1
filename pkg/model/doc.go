// Package model defines the payee form state, the tagged file reference
// variant, and the section/field descriptors the render pipeline consumes.
//
// FormState is the single mutable entity in the engine: created once per
// payload, rewritten through the normalizer on every edit, and discarded on
// navigation. Everything derived from it (sections, descriptors, widget
// assignments) is recomputed on demand and never stored.
package model
