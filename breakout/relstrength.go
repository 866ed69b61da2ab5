package breakout

// RelStrength tracks the symbol/benchmark price ratio and answers the two
// questions the evaluator asks: is the ratio at a rolling-window high, and
// is its trend declining. It is updated once per bar by the orchestrator.
type RelStrength struct {
	window int
	alpha  float64 // EMA smoothing for the trend test

	hist  []float64
	ema   float64
	seen  int
	ratio float64
}

// NewRelStrength creates a tracker with the given rolling-high window and
// an EMA of the same period for the trend test.
func NewRelStrength(window int) *RelStrength {
	if window <= 0 {
		window = 60
	}
	return &RelStrength{
		window: window,
		alpha:  2.0 / float64(window+1),
	}
}

// Update consumes the symbol and benchmark closes for one bar. Bars where
// the benchmark close is non-positive are skipped.
func (r *RelStrength) Update(close, benchClose float64) {
	if benchClose <= 0 {
		return
	}
	ratio := close / benchClose
	r.ratio = ratio

	r.seen++
	if r.seen == 1 {
		r.ema = ratio
	} else {
		r.ema = r.alpha*ratio + (1.0-r.alpha)*r.ema
	}

	r.hist = append(r.hist, ratio)
	if len(r.hist) > r.window {
		r.hist = r.hist[1:]
	}
}

// Ready reports whether enough history exists for the rolling-high test.
func (r *RelStrength) Ready() bool { return len(r.hist) >= r.window }

// NewHigh reports whether the latest ratio is the maximum of the rolling
// window.
func (r *RelStrength) NewHigh() bool {
	if !r.Ready() {
		return false
	}
	for _, h := range r.hist {
		if h > r.ratio {
			return false
		}
	}
	return true
}

// Declining reports whether the ratio sits below its own EMA, i.e. the
// relative-strength trend is rolling over.
func (r *RelStrength) Declining() bool {
	return r.seen >= r.window && r.ratio < r.ema
}
