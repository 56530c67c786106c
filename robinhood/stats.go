package robinhood

// Stats describes how entries are spread over the slots.
type Stats struct {
	Len       int
	Cap       int
	MaxProbe  int
	MeanProbe float64
	// ProbeHistogram[d] is the number of entries placed d slots away from their home slot
	ProbeHistogram []int
}

// Stats walks all slots and collects probe length statistics.
func (m *Map[K, V, H, C]) Stats() Stats {
	st := Stats{Len: m.count, Cap: m.Cap()}
	if !m.slots.allocated() || m.count == 0 {
		return st
	}

	var total int
	for pos, hsh := range m.slots.hashes {
		if hsh == emptyHash {
			continue
		}
		d := int(m.slots.probeLength(uint32(pos), hsh))
		for len(st.ProbeHistogram) <= d {
			st.ProbeHistogram = append(st.ProbeHistogram, 0)
		}
		st.ProbeHistogram[d]++
		st.MaxProbe = max(st.MaxProbe, d)
		total += d
	}
	st.MeanProbe = float64(total) / float64(m.count)
	return st
}
