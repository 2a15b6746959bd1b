package wavelet

// CDF 9/7 lifting implementation (irreversible path of JPEG 2000).
// Reference: ISO/IEC 15444-1:2019 Annex F, Table F.4.

const (
	alpha97 = -1.586134342059924
	beta97  = -0.052980118572961
	gamma97 = 0.882911075530934
	delta97 = 0.443506852043971

	k97    = 1.230174104914001
	invK97 = 1.0 / k97
)

// forward97 splits an even-length signal into low- and high-pass halves via
// the four lifting steps. Boundaries use whole-sample symmetric clamps.
func forward97(x []float64) (lo, hi []float64) {
	half := len(x) / 2
	s := make([]float64, half)
	d := make([]float64, half)
	for i := 0; i < half; i++ {
		s[i] = x[2*i]
		d[i] = x[2*i+1]
	}

	liftPredict(d, s, alpha97)
	liftUpdate(s, d, beta97)
	liftPredict(d, s, gamma97)
	liftUpdate(s, d, delta97)

	for i := 0; i < half; i++ {
		s[i] *= invK97
		d[i] *= k97
	}
	return s, d
}

// inverse97 reverses forward97 exactly: undo the scaling, then the lifting
// steps in opposite order with negated constants.
func inverse97(lo, hi []float64) []float64 {
	half := len(lo)
	s := make([]float64, half)
	d := make([]float64, half)
	for i := 0; i < half; i++ {
		s[i] = lo[i] * k97
		d[i] = hi[i] * invK97
	}

	liftUpdate(s, d, -delta97)
	liftPredict(d, s, -gamma97)
	liftUpdate(s, d, -beta97)
	liftPredict(d, s, -alpha97)

	out := make([]float64, half*2)
	for i := 0; i < half; i++ {
		out[2*i] = s[i]
		out[2*i+1] = d[i]
	}
	return out
}

// liftPredict applies d[i] += c * (s[i] + s[i+1]), clamping at the right edge.
func liftPredict(d, s []float64, c float64) {
	n := len(d)
	for i := 0; i < n; i++ {
		r := i + 1
		if r >= n {
			r = n - 1
		}
		d[i] += c * (s[i] + s[r])
	}
}

// liftUpdate applies s[i] += c * (d[i-1] + d[i]), clamping at the left edge.
func liftUpdate(s, d []float64, c float64) {
	n := len(s)
	for i := 0; i < n; i++ {
		l := i - 1
		if l < 0 {
			l = 0
		}
		s[i] += c * (d[l] + d[i])
	}
}
