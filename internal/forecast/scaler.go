package forecast

// minMaxScaler maps each column independently onto [0,1] using the min and max
// observed at fit time. A column with zero range is mapped with scale 1 so a
// constant column transforms to 0.
type minMaxScaler struct {
	min   []float64
	scale []float64
}

func fitMinMax(rows [][]float64) *minMaxScaler {
	if len(rows) == 0 {
		return &minMaxScaler{}
	}
	cols := len(rows[0])
	s := &minMaxScaler{
		min:   make([]float64, cols),
		scale: make([]float64, cols),
	}
	max := make([]float64, cols)
	copy(s.min, rows[0])
	copy(max, rows[0])
	for _, r := range rows[1:] {
		for j, v := range r {
			if v < s.min[j] {
				s.min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	for j := range s.scale {
		s.scale[j] = max[j] - s.min[j]
		if s.scale[j] == 0 {
			s.scale[j] = 1
		}
	}
	return s
}

func (s *minMaxScaler) transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.min[j]) / s.scale[j]
	}
	return out
}

func (s *minMaxScaler) inverse(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = v*s.scale[j] + s.min[j]
	}
	return out
}
