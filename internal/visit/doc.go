// Package visit is the traversal framework shared by the semantic passes.
//
// A pass embeds Base[T], sets Base.Self to itself and overrides only the
// Visit hooks it cares about. Every hook that is not overridden falls back
// to the matching Walk function, which recurses structurally through Self
// and returns DefaultReturn. T is whatever the pass computes per node: the
// binder and the type resolver use struct{}, lowering uses backend values.
//
// Entering a module or a function makes its scope current for the duration
// of the walk. The scope is found through the session: the node's reference
// gives the definition id, the registry gives the scope. A pass that
// creates scopes (the binder) therefore does its work before calling the
// Walk function.
package visit
