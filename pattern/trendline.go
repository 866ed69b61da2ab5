package pattern

// Trendline is an ordinary least-squares line fit over (index, price)
// points. Slope is price units per bar against the same index origin the
// points were given in.
type Trendline struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// ValueAt evaluates the line at a bar index.
func (t Trendline) ValueAt(idx int) float64 {
	return t.Slope*float64(idx) + t.Intercept
}

// Fit runs an OLS regression over the pivot points. Fewer than 2 points
// (or zero index variance) yields a degenerate line with slope 0 and R² 0;
// callers must treat R² 0 as insufficient evidence and reject.
func Fit(points []PivotPoint) Trendline {
	n := float64(len(points))
	if len(points) == 0 {
		return Trendline{}
	}
	if len(points) == 1 {
		return Trendline{Intercept: points[0].Price}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += float64(p.Index)
		sumY += p.Price
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, p := range points {
		dx := float64(p.Index) - meanX
		sxx += dx * dx
		sxy += dx * (p.Price - meanY)
	}

	if sxx == 0 {
		// Vertical input: all points share an index.
		return Trendline{Intercept: meanY}
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for _, p := range points {
		fit := slope*float64(p.Index) + intercept
		r := p.Price - fit
		d := p.Price - meanY
		ssRes += r * r
		ssTot += d * d
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
		if r2 < 0 {
			r2 = 0
		}
		if r2 > 1 {
			r2 = 1
		}
	}

	return Trendline{Slope: slope, Intercept: intercept, R2: r2}
}
