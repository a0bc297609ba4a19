package dynarr

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Len           int     // Elements in use
	Cap           int     // Element slots allocated
	ElemSize      int     // Bytes per element
	BytesInUse    int     // Header plus Len elements
	BytesReserved int     // Header plus Cap elements
	Reallocations int     // Successful reallocations since construction
	Utilization   float64 // Ratio of Len to Cap (0.0-1.0)
}

// Utilization returns the ratio of elements in use to allocated slots.
// Returns 0.0 if the vector has no capacity.
func (v *RawVector) Utilization() float64 {
	c := v.Cap()
	if c == 0 {
		return 0
	}
	return float64(v.Len()) / float64(c)
}

// Metrics returns a snapshot of vector statistics. A released vector reports
// zeros except for Reallocations.
func (v *RawVector) Metrics() VectorMetrics {
	m := VectorMetrics{
		Len:           v.Len(),
		Cap:           v.Cap(),
		ElemSize:      v.ElemSize(),
		Reallocations: v.reallocs,
		Utilization:   v.Utilization(),
	}
	if v.buf != nil {
		m.BytesInUse = headerSize + m.Len*m.ElemSize
		m.BytesReserved = headerSize + m.Cap*m.ElemSize
	}
	return m
}

// Utilization returns the ratio of elements in use to allocated slots.
func (v *Vector[T]) Utilization() float64 { return v.raw.Utilization() }

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics { return v.raw.Metrics() }
