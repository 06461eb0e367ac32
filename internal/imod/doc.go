// Package imod defines the structural program model the implicit
// argument resolution works on: methods, their parameters and fields,
// call sites and lexical scopes.
//
// The entities here provide a consistent vocabulary shared by every
// resolution stage. The model is built once by a frontend collaborator
// (see internal/gosrc for the Go source one) and is never mutated after
// the marker registry pass sealed the implicit flags. Edits produced by
// the injector describe changes to source text, not to this model.
package imod
