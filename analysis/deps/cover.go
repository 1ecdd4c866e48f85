package deps

// MinimalCover returns one minimal cover of fds. When fds is nil, Sigma+ is
// used as the starting point.
func (s *Schema) MinimalCover(fds []FD) []FD {
	if fds == nil {
		fds = s.FDClosure()
	}
	s.trace(TraceEvent{Stage: StageCoverInput, FDs: fds})

	reduced := s.simplifyLHS(fds)
	s.trace(TraceEvent{Stage: StageCoverReducedLHS, FDs: difference(fds, reduced)})

	cover := removeRedundant(reduced)
	s.trace(TraceEvent{Stage: StageCoverRedundant, FDs: difference(reduced, cover)})

	cover = SortFDs(cover)
	s.trace(TraceEvent{Stage: StageCoverResult, FDs: cover})
	return cover
}

// MinimalCoverFromFDs is MinimalCover starting from the declared FDs.
func (s *Schema) MinimalCoverFromFDs() []FD {
	return s.MinimalCover(s.FDs())
}

// AllMinimalCovers enumerates every subset of the LHS-reduced fds that is
// equivalent to a minimal cover, skipping subsets that contain an already
// accepted cover. The search visits all 2^n subsets and is only meant for
// small dependency sets.
func (s *Schema) AllMinimalCovers(fds []FD) [][]FD {
	reference := s.MinimalCover(fds)
	if fds == nil {
		fds = s.FDClosure()
	}
	reduced := s.simplifyLHS(fds)

	var covers []*SetFunc[FD]
	for k := 1; k <= len(reduced); k++ {
		forEachCombination(len(reduced), k, func(idx []int) {
			candidate := NewFDSet()
			for _, i := range idx {
				candidate.Add(reduced[i])
			}
			if !equivalent(candidate.elems, reference) {
				return
			}
			for _, c := range covers {
				if c.SubsetOf(candidate) {
					return
				}
			}
			covers = append(covers, candidate)
		})
	}

	out := make([][]FD, len(covers))
	for i, c := range covers {
		out[i] = c.Elems()
	}
	return out
}

func (s *Schema) AllMinimalCoversFromFDs() [][]FD {
	return s.AllMinimalCovers(s.FDs())
}

// CompactFDs merges FDs that share a LHS into one FD, keeping the order in
// which each LHS first appears.
func CompactFDs(fds []FD) []FD {
	var out []FD
	index := map[string]int{}
	for _, f := range fds {
		k := f.LHS.key()
		if i, ok := index[k]; ok {
			out[i].RHS = out[i].RHS.Union(f.RHS)
			continue
		}
		index[k] = len(out)
		out = append(out, NewFD(f.LHS, f.RHS))
	}
	return out
}

// simplifyLHS replaces the LHS of each FD with the first (smallest) attribute
// set inside it whose closure already covers the RHS.
func (s *Schema) simplifyLHS(fds []FD) []FD {
	closures := s.AttributeClosures()
	out := NewFDSet()
	for _, f := range fds {
		simplified := f
		for _, c := range closures {
			if c.Attributes.SubsetOf(f.LHS) && f.RHS.SubsetOf(c.Closure) {
				simplified = FD{LHS: c.Attributes, RHS: f.RHS}
				break
			}
		}
		out.Add(simplified)
	}
	return out.Elems()
}

// removeRedundant drops, one at a time, an FD whose removal leaves the closure
// of its own LHS unchanged, restarting after every removal.
func removeRedundant(fds []FD) []FD {
	current := append([]FD(nil), fds...)
	for removed := true; removed; {
		removed = false
		for i, f := range current {
			rest := make([]FD, 0, len(current)-1)
			rest = append(rest, current[:i]...)
			rest = append(rest, current[i+1:]...)

			if Closure(f.LHS, current).Equal(Closure(f.LHS, rest)) {
				current = rest
				removed = true
				break
			}
		}
	}
	return current
}

// difference returns the FDs of a that are not in b.
func difference(a, b []FD) []FD {
	in := NewFDSet(b...)
	var out []FD
	for _, f := range a {
		if !in.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

// forEachCombination calls f with every k-subset of [0, n) in lexicographic order.
func forEachCombination(n, k int, f func(idx []int)) {
	if k > n || k <= 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		f(idx)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
