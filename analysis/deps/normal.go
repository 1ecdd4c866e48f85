package deps

// NormalForm is the strongest normal form a schema was found to satisfy.
type NormalForm int

const (
	NF1 NormalForm = iota + 1
	NF2
	NF3
	BCNF
)

func (n NormalForm) String() string {
	switch n {
	case NF1:
		return "1NF"
	case NF2:
		return "2NF"
	case NF3:
		return "3NF"
	case BCNF:
		return "BCNF"
	}
	return "unknown"
}

// NormalForm classifies the schema by its FDs.
func (s *Schema) NormalForm() NormalForm {
	switch {
	case s.IsInBCNF():
		return BCNF
	case s.IsIn3NF():
		return NF3
	case s.IsIn2NF():
		return NF2
	}
	return NF1
}

// IsInBCNF reports whether every non-trivial FD has a superkey LHS.
func (s *Schema) IsInBCNF() bool {
	if len(s.attrs) < 2 {
		return true
	}
	_, ok := s.bcnfViolation()
	return !ok
}

// bcnfViolation returns the first non-trivial FD, in insertion order, whose
// LHS is not a superkey.
func (s *Schema) bcnfViolation() (FD, bool) {
	for _, f := range s.fds.elems {
		if !f.IsTrivial() && !s.IsSuperkey(f.LHS) {
			return f, true
		}
	}
	return FD{}, false
}

// IsIn3NF reports whether every FD that breaks BCNF has only prime
// attributes on its RHS.
func (s *Schema) IsIn3NF() bool {
	if s.IsInBCNF() {
		return true
	}
	for _, f := range s.fds.elems {
		if f.IsTrivial() || s.IsSuperkey(f.LHS) {
			continue
		}
		if !s.allPrime(f.RHS) {
			return false
		}
	}
	return true
}

// IsIn2NF requires every non-trivial FD to have only prime attributes on its
// RHS when the schema is not already in 3NF. It does not look for partial
// dependencies on a candidate key, so it is stricter than the textbook 2NF
// definition for schemas outside 3NF.
func (s *Schema) IsIn2NF() bool {
	if s.IsIn3NF() {
		return true
	}
	for _, f := range s.fds.elems {
		if f.IsTrivial() {
			continue
		}
		if !s.allPrime(f.RHS) {
			return false
		}
	}
	return true
}

func (s *Schema) allPrime(attrs Attrs) bool {
	for _, a := range attrs {
		if !s.IsPrimeAttribute(a) {
			return false
		}
	}
	return true
}

// IsIn4NF reports whether every MVD is trivial, has the complement of its
// LHS as RHS, or has a superkey LHS. Schemas of at most two attributes are
// always in 4NF.
func (s *Schema) IsIn4NF() bool {
	if len(s.attrs) <= 2 {
		return true
	}
	for _, m := range s.mvds {
		if s.violates4NF(m) {
			return false
		}
	}
	return true
}

func (s *Schema) violates4NF(m MVD) bool {
	return !m.IsTrivial() &&
		!m.RHS.Equal(s.attrs.Minus(m.LHS)) &&
		!s.IsSuperkey(m.LHS)
}
