// Package tag implements the NBT value model: a closed tagged union over the
// thirteen tag kinds of format.Kind.
//
// A Tag carries a kind, an optional name and a kind-dependent payload. Names
// exist only on compound entries and on the document root; list elements are
// unnamed, and Name reports that with ok=false rather than an empty string.
//
// Trees are built explicitly:
//
//	root := tag.Compound(
//	    tag.String("Steve").Named("Name"),
//	    tag.List(format.KindDouble, tag.Double(0.5), tag.Double(64), tag.Double(-3)).Named("Pos"),
//	    tag.Byte(1).Named("OnGround"),
//	).Named("")
//
// and read back through explicit, kind-checked accessors:
//
//	pos, _ := root.Get("Pos")
//	elems, err := pos.AsList()
//
// Accessors never coerce implicitly: AsInt on a Long tag fails with
// errs.ErrKindMismatch. Numeric coercion is opt-in through Int64Value,
// Float64Value and the narrowing Int32Value/Int16Value/Int8Value helpers, which
// truncate deterministically instead of failing.
//
// Construction validates structure only. In particular a list whose children
// disagree with its declared element kind can be built; the encoder rejects it.
//
// Ownership is strictly tree-shaped: a Tag must not be inserted into more than
// one container. Use Clone to copy subtrees. Trees carry no internal locking.
package tag
