package query

// Normalise rewrites f into negation-normal form: Not is pushed down to and
// absorbed into leaves, De Morgan's laws flip And/Or under a Not, and
// double negation cancels. Atomic leaves are copied unchanged except under
// an odd number of enclosing Nots, where the comparator is complemented
// (Eq expands to Or(Lt, Gt) since it has no single-operator complement —
// see Op.Complement).
//
// Idempotent: Normalise(Normalise(q)) is structurally equal to
// Normalise(q), since the result never contains a KNot node for
// Normalise to act on (spec §8 property 1).
func Normalise(f *Formula) *Formula {
	return normalise(f, false)
}

// normalise applies the rewrite; neg tracks whether an odd number of Nots
// enclose the current subtree.
func normalise(f *Formula, neg bool) *Formula {
	if f == nil {
		return nil
	}
	switch f.Kind {
	case KAtomic:
		if !neg {
			return Atomic(f.Place, f.Op, f.N)
		}
		if f.Op == Eq {
			return Or(Atomic(f.Place, Lt, f.N), Atomic(f.Place, Gt, f.N))
		}
		return Atomic(f.Place, f.Op.Complement(), f.N)
	case KNot:
		return normalise(f.Child, !neg)
	case KAnd:
		l, r := normalise(f.Left, neg), normalise(f.Right, neg)
		if neg {
			return Or(l, r)
		}
		return And(l, r)
	case KOr:
		l, r := normalise(f.Left, neg), normalise(f.Right, neg)
		if neg {
			return And(l, r)
		}
		return Or(l, r)
	}
	return f
}
