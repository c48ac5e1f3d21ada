package engine

import "hbs/pkg/engine/precompile"

// ToJavaScript returns n's source text precompiled into a Handlebars.js
// template function. The shared precompiler computes it once per node;
// later calls return the memoized string.
func ToJavaScript(n Node) (string, error) {
	return precompile.Shared().Precompile(n, &n.base().javaScript)
}
