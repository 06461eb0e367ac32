// Package gosrc is the program model collaborator for Go sources: it
// turns type-checked files into the imod vocabulary the resolution
// stages consume.
//
// Markers are recognized from directive comments:
//
//	//implicator:implicit ctx cfg   on a function: tags the named parameters
//	//implicator:passthrough        on a function: tags it pass-through
//	//implicator:implicit           on a package var: tags it as a static implicit
//
// and from the `implicit:""` struct tag on fields. The frontend only
// reports these as attribute applications; classification is the
// marker registry's business.
//
// Go has no static members, so struct fields are always instance
// members here and package-level variables play the static role. Block
// scopes are mirrored from go/types, which keeps shadowing decisions
// aligned with the compiler's own view.
package gosrc
