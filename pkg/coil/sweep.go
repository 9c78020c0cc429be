package coil

// SampleResult is the evaluation of one time index.
type SampleResult struct {
	Time            float64
	AngularVelocity float64
	Angle           float64
	MagneticField   float64
	MagneticFlux    float64
	EMF             float64
}

// Result holds the sweep output. Every sequence has the same length.
type Result struct {
	Parameters Parameters

	Resistance float64 // ohms
	Current    float64 // amperes, constant over the sweep
	Area       float64 // square meters

	Time            []float64 // s
	AngularVelocity []float64 // rad/s
	Angle           []float64 // rad, ω/t
	MagneticField   []float64 // T
	MagneticFlux    []float64 // Wb
	EMF             []float64 // V
}

// Len returns the number of samples.
func (r *Result) Len() int { return len(r.Time) }

// Sample returns the values at index i.
func (r *Result) Sample(i int) SampleResult {
	return SampleResult{
		Time:            r.Time[i],
		AngularVelocity: r.AngularVelocity[i],
		Angle:           r.Angle[i],
		MagneticField:   r.MagneticField[i],
		MagneticFlux:    r.MagneticFlux[i],
		EMF:             r.EMF[i],
	}
}

// Sweep evaluates the coil at every time sample. It never fails; division by
// zero at t = 0 leaves an infinite angle and NaN flux and EMF in slot 0.
func Sweep(p Parameters) *Result {
	resistance := Resistance(p.WireArea, p.WireLength, p.Resistivity)
	area := CoilArea(p.CoilLength)
	current := p.AppliedVoltage / resistance

	t := TimeSeries(p)
	omega := AngularVelocitySeries(p)
	n := len(t)

	res := &Result{
		Parameters:      p,
		Resistance:      resistance,
		Current:         current,
		Area:            area,
		Time:            t,
		AngularVelocity: omega,
		Angle:           make([]float64, n),
		MagneticField:   make([]float64, n),
		MagneticFlux:    make([]float64, n),
		EMF:             make([]float64, n),
	}

	for i := 0; i < n; i++ {
		theta := omega[i] / t[i]
		b := MagneticField(p.Turns, current, p.CoilLength)

		res.Angle[i] = theta
		res.MagneticField[i] = b
		res.MagneticFlux[i] = MagneticFlux(b, area, theta)
		res.EMF[i] = ElectromotiveForce(p.Turns, b, area, theta)
	}

	return res
}
