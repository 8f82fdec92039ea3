package autopilot

// PID is a proportional-integral-derivative loop tracking a scalar
// target. The zero value is not usable, construct with [NewPID].
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

// Compute returns the control output for the measured value at time t.
// The first call after construction or [PID.Reset] seeds the derivative
// history and answers with the proportional term alone.
func (p *PID) Compute(measured, t float64) float64 {
	err := p.Target - measured

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		p.prevErr = err
		p.prevT = t

		return p.Kp*err + p.Ki*p.integral + p.Kd*derivative
	}
	return p.Kp * err
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// Retarget moves the setpoint and resets the loop state so the old
// integral does not shove the aircraft at the new target.
func (p *PID) Retarget(target float64) {
	p.Target = target
	p.Reset()
}
