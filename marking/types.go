// Package marking implements the aged-token multiset marking of a TAPN
// (spec §3, §4.B): per place, an ascending-age-sorted, duplicate-age-free
// sequence of (age, count) tokens.
//
// A Marking is a value type; every exported transformation (Add, Remove,
// Delay) returns a new Marking and never mutates its receiver, satisfying
// spec §8 property 4 ("successor purity") and keeping the type safe to
// share across the passed set without synchronization, matching the
// single-threaded ownership model of spec §5. This mirrors the teacher's
// clone-then-mutate discipline (core/methods_clone.go) rather than its
// RWMutex-guarded in-place mutation (core/methods.go): a Marking has no
// concurrent writers to begin with, so even the clone discipline is cheaper
// than the teacher's locks would be.
package marking

import (
	"errors"
	"hash/maphash"
	"sort"
)

// Sentinel errors.
var (
	// ErrInsufficientTokens indicates Remove was asked for more tokens at
	// an age than the place currently holds.
	ErrInsufficientTokens = errors.New("marking: insufficient tokens at age")

	// ErrInvariantViolated indicates a Delay would push some token's age
	// past its place's invariant (or overflow arithmetic for the age).
	ErrInvariantViolated = errors.New("marking: invariant violated")
)

// Token is an (age, count) pair; Count is always >= 1 in a well-formed
// Marking (zero-count tokens are never stored).
type Token struct {
	Age   int
	Count int
}

// InvariantChecker reports whether `age` is legal for `place`. Passed in
// rather than importing package tapn directly keeps marking free to be
// tested in isolation; package tapn's Invariant.Holds satisfies it.
type InvariantChecker func(place, age int) bool

// Marking is an immutable-by-convention value: a slice of per-place token
// sequences, each ascending by Age with no duplicate ages.
type Marking struct {
	places [][]Token
}

// New returns an empty marking over numPlaces places.
func New(numPlaces int) Marking {
	return Marking{places: make([][]Token, numPlaces)}
}

// NumPlaces reports how many places this marking is defined over.
func (m Marking) NumPlaces() int { return len(m.places) }

// Count returns the total token count at place p (0 if out of range).
func (m Marking) Count(place int) int {
	if place < 0 || place >= len(m.places) {
		return 0
	}
	total := 0
	for _, tok := range m.places[place] {
		total += tok.Count
	}
	return total
}

// TokensIn returns a copy of the sorted token sequence at place p.
func (m Marking) TokensIn(place int) []Token {
	if place < 0 || place >= len(m.places) {
		return nil
	}
	out := make([]Token, len(m.places[place]))
	copy(out, m.places[place])
	return out
}

// TotalTokens sums token counts across every place; used by successor
// purity / conservation tests (spec §8 property 5).
func (m Marking) TotalTokens() int {
	total := 0
	for p := range m.places {
		total += m.Count(p)
	}
	return total
}

// Clone deep-copies the marking.
func (m Marking) Clone() Marking {
	out := Marking{places: make([][]Token, len(m.places))}
	for i, toks := range m.places {
		if toks == nil {
			continue
		}
		out.places[i] = append([]Token(nil), toks...)
	}
	return out
}

// addInPlace inserts count tokens of the given age into place p, coalescing
// with an existing token of the same age. count must be >= 1; age must be
// >= 0. Maintains the ascending-sorted, no-duplicate-age invariant.
func (m *Marking) addInPlace(place, age, count int) {
	toks := m.places[place]
	i := sort.Search(len(toks), func(i int) bool { return toks[i].Age >= age })
	if i < len(toks) && toks[i].Age == age {
		toks[i].Count += count
		m.places[place] = toks
		return
	}
	toks = append(toks, Token{})
	copy(toks[i+1:], toks[i:])
	toks[i] = Token{Age: age, Count: count}
	m.places[place] = toks
}

// removeInPlace removes count tokens of the given age from place p,
// erasing the entry if its count reaches zero. Returns
// ErrInsufficientTokens (and leaves the place unmodified) if fewer than
// count tokens of that age are present.
func (m *Marking) removeInPlace(place, age, count int) error {
	toks := m.places[place]
	i := sort.Search(len(toks), func(i int) bool { return toks[i].Age >= age })
	if i >= len(toks) || toks[i].Age != age || toks[i].Count < count {
		return ErrInsufficientTokens
	}
	toks[i].Count -= count
	if toks[i].Count == 0 {
		toks = append(toks[:i], toks[i+1:]...)
	}
	m.places[place] = toks
	return nil
}

// Add returns a new marking with count tokens of the given age added to
// place p. The receiver is unmodified.
func (m Marking) Add(place, age, count int) Marking {
	out := m.Clone()
	out.addInPlace(place, age, count)
	return out
}

// Remove returns a new marking with count tokens of the given age removed
// from place p. The receiver is unmodified regardless of outcome.
func (m Marking) Remove(place, age, count int) (Marking, error) {
	out := m.Clone()
	if err := out.removeInPlace(place, age, count); err != nil {
		return Marking{}, err
	}
	return out, nil
}

// Delay returns a new marking with every token's age advanced by dt,
// subject to each place's invariant (checked via chk). On any violation —
// including arithmetic overflow of an age — it returns ErrInvariantViolated
// and the receiver is left untouched (spec §4.B: "delay aborts atomically
// on invariant violation").
func (m Marking) Delay(dt int, chk InvariantChecker) (Marking, error) {
	if dt == 0 {
		return m.Clone(), nil
	}
	out := Marking{places: make([][]Token, len(m.places))}
	for p, toks := range m.places {
		if toks == nil {
			continue
		}
		newToks := make([]Token, len(toks))
		for i, tok := range toks {
			newAge := tok.Age + dt
			if newAge < tok.Age { // overflow
				return Marking{}, ErrInvariantViolated
			}
			if chk != nil && !chk(p, newAge) {
				return Marking{}, ErrInvariantViolated
			}
			newToks[i] = Token{Age: newAge, Count: tok.Count}
		}
		out.places[p] = newToks
	}
	return out, nil
}

// Equals reports whether m and other hold the same multiset of tokens in
// every place (spec §3: "equal iff equal as multisets per place").
func (m Marking) Equals(other Marking) bool {
	if len(m.places) != len(other.places) {
		return false
	}
	for p := range m.places {
		a, b := m.places[p], other.places[p]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// hashSeed is process-wide so Hash() results are stable within one run but
// deliberately not across processes (maphash's documented contract) —
// appropriate for a passed-set fingerprint, which never needs to be
// persisted or compared cross-process (spec §6: "Persisted state: None").
var hashSeed = maphash.MakeSeed()

// Hash returns a fingerprint of the full token content, suitable as a
// passed-set key (spec §3 "Passed set... fingerprint hashes the entire
// token content").
func (m Marking) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	var buf [8]byte
	putUint := func(v int) {
		u := uint64(v)
		for i := 0; i < 8; i++ {
			buf[i] = byte(u >> (8 * i))
		}
		h.Write(buf[:])
	}
	for p, toks := range m.places {
		if len(toks) == 0 {
			continue
		}
		putUint(p)
		putUint(len(toks))
		for _, tok := range toks {
			putUint(tok.Age)
			putUint(tok.Count)
		}
	}
	return h.Sum64()
}
