package scene

import "math"

const (
	gravity       = 0.0005
	bounceDamping = 0.9
	snowDrift     = 0.0008
	burstLifetime = 90
	burstGravity  = 0.00008
	sparkFade     = 0.985
)

// AdvanceRange applies the scene's animation rule to circles [lo, hi).
// Circles are updated independently of each other, so disjoint ranges may be
// processed concurrently. Frame is read but not modified.
func (s *State) AdvanceRange(lo, hi int) {
	switch s.Kind {
	case Bouncing:
		for i := lo; i < hi; i++ {
			s.bounce(i)
		}
	case Snow:
		for i := lo; i < hi; i++ {
			s.fall(i)
		}
	case Hypnotic:
		applyHypnosisColors(s, lo, hi)
	case Burst:
		for i := lo; i < hi; i++ {
			s.spark(i)
		}
	}
}

func (s *State) bounce(i int) {
	p, v, r := s.Position[3*i:3*i+3], s.Velocity[3*i:3*i+3], s.Radius[i]

	v[1] -= gravity
	p[0] += v[0]
	p[1] += v[1]

	if p[1] < r {
		p[1] = r
		v[1] = -v[1] * bounceDamping
	}
	if p[0] < r {
		p[0] = r
		v[0] = -v[0]
	} else if p[0] > 1-r {
		p[0] = 1 - r
		v[0] = -v[0]
	}
}

func (s *State) fall(i int) {
	p, v, r := s.Position[3*i:3*i+3], s.Velocity[3*i:3*i+3], s.Radius[i]

	p[0] += snowDrift * float32(math.Sin(0.05*float64(s.Frame)+float64(i)))
	p[1] += v[1]

	if p[1]+r < 0 {
		p[1] = 1 + r
	}
	if p[0] < 0 {
		p[0] += 1
	} else if p[0] > 1 {
		p[0] -= 1
	}
}

func (s *State) spark(i int) {
	bursts := s.Len() / s.burstSize
	b := i / s.burstSize
	t := s.Frame + 1 + b*burstLifetime/bursts
	if t%burstLifetime == 0 {
		launchSpark(s, i, uint64(t/burstLifetime))
		return
	}

	p, v := s.Position[3*i:3*i+3], s.Velocity[3*i:3*i+3]
	v[1] -= burstGravity
	p[0] += v[0]
	p[1] += v[1]

	c := s.Color[3*i : 3*i+3]
	c[0] *= sparkFade
	c[1] *= sparkFade
	c[2] *= sparkFade
}

func launchSpark(s *State, i int, generation uint64) {
	b := uint64(i / s.burstSize)
	k := uint64(i)

	cx := 0.2 + 0.6*hash01(b, generation, 1)
	cy := 0.4 + 0.5*hash01(b, generation, 2)
	hr, hg, hb := palette(hash01(b, generation, 3))

	dx, dy := angle(hash01(k, generation, 4))
	speed := 0.002 + 0.008*hash01(k, generation, 5)
	jitter := 0.8 + 0.2*hash01(k, generation, 6)

	set3(s.Position, i, cx, cy, 0)
	set3(s.Velocity, i, dx*speed, dy*speed, 0)
	set3(s.Color, i, hr*jitter, hg*jitter, hb*jitter)
	s.Radius[i] = 0.003 + 0.004*hash01(k, generation, 7)
}

func applyHypnosisColors(s *State, lo, hi int) {
	for i := lo; i < hi; i++ {
		t := 0.1*float64(s.Frame) + 0.35*float64(i)
		set3(s.Color, i,
			float32(0.5+0.5*math.Sin(t)),
			float32(0.5+0.5*math.Sin(t+2.094)),
			float32(0.5+0.5*math.Sin(t+4.189)))
	}
}

// palette maps h in [0,1) to a saturated color.
func palette(h float32) (float32, float32, float32) {
	t := 2 * math.Pi * float64(h)
	return float32(0.5 + 0.5*math.Cos(t)),
		float32(0.5 + 0.5*math.Cos(t-2.094)),
		float32(0.5 + 0.5*math.Cos(t-4.189))
}
