package scene

import (
	"math"
	"math/rand"
	"sort"
)

const (
	bouncingBallCount = 16
	hypnosisRings     = 32
	fireworkBursts    = 12
	fireworkSparks    = 384
	snowflakeCount    = 100000
)

// Load builds the initial state of a scene. Every scene uses a fixed seed so
// that two backends loading the same scene start from identical particles.
func Load(name Name) (*State, error) {
	switch name {
	case CircleRGB:
		return loadRGB(), nil
	case CircleRGBY:
		return loadRGBY(), nil
	case Rand10K:
		return loadRandom(name, 10000, 0.02, 0.06), nil
	case Rand100K:
		return loadRandom(name, 100000, 0.01, 0.03), nil
	case Rand1M:
		return loadRandom(name, 1000000, 0.002, 0.008), nil
	case Micro2M:
		return loadRandom(name, 2000000, 0.0005, 0.0015), nil
	case BigLittle:
		return loadBigLittle(name, false), nil
	case LittleBig:
		return loadBigLittle(name, true), nil
	case Pattern:
		return loadPattern(), nil
	case BouncingBalls:
		return loadBouncingBalls(), nil
	case Hypnosis:
		return loadHypnosis(), nil
	case Fireworks:
		return loadFireworks(), nil
	case Snowflakes:
		return loadSnow(name, Snow), nil
	case SnowflakesSingleFrame:
		return loadSnow(name, Static), nil
	}
	return nil, ErrUnknownScene
}

func loadRGB() *State {
	s := newState(CircleRGB, Static, 3)
	set3(s.Position, 0, 0.4, 0.5, 0.75)
	set3(s.Position, 1, 0.5, 0.5, 0.5)
	set3(s.Position, 2, 0.6, 0.5, 0.25)
	set3(s.Color, 0, 1, 0, 0)
	set3(s.Color, 1, 0, 1, 0)
	set3(s.Color, 2, 0, 0, 1)
	for i := range s.Radius {
		s.Radius[i] = 0.3
	}
	return s
}

func loadRGBY() *State {
	s := newState(CircleRGBY, Static, 4)
	set3(s.Position, 0, 0.25, 0.75, 0.8)
	set3(s.Position, 1, 0.75, 0.75, 0.6)
	set3(s.Position, 2, 0.25, 0.25, 0.4)
	set3(s.Position, 3, 0.75, 0.25, 0.2)
	set3(s.Color, 0, 1, 0, 0)
	set3(s.Color, 1, 0, 1, 0)
	set3(s.Color, 2, 0, 0, 1)
	set3(s.Color, 3, 1, 1, 0)
	for i := range s.Radius {
		s.Radius[i] = 0.4
	}
	return s
}

// loadRandom scatters n circles with radii in [minR, minR+spanR) and sorts
// them back to front by depth.
func loadRandom(name Name, n int, minR, spanR float32) *State {
	rng := rand.New(rand.NewSource(int64(n) + 42))
	s := newState(name, Static, n)
	for i := 0; i < n; i++ {
		set3(s.Position, i, rng.Float32(), rng.Float32(), rng.Float32())
		set3(s.Color, i, 0.1+0.9*rng.Float32(), 0.1+0.9*rng.Float32(), 0.1+0.9*rng.Float32())
		s.Radius[i] = minR + spanR*rng.Float32()
	}
	return sortByDepth(s)
}

func loadBigLittle(name Name, reverse bool) *State {
	const big, little = 50, 10000
	rng := rand.New(rand.NewSource(1701))
	s := newState(name, Static, big+little)
	for i := 0; i < big+little; i++ {
		// depth keeps the big circles behind the small ones
		var z, r float32
		if i < big {
			z = 0.5 + 0.5*rng.Float32()
			r = 0.1 + 0.15*rng.Float32()
		} else {
			z = 0.5 * rng.Float32()
			r = 0.005 + 0.015*rng.Float32()
		}
		set3(s.Position, i, rng.Float32(), rng.Float32(), z)
		set3(s.Color, i, rng.Float32(), rng.Float32(), rng.Float32())
		s.Radius[i] = r
	}
	s = sortByDepth(s)
	if reverse {
		reverseOrder(s)
	}
	return s
}

func loadPattern() *State {
	const grid = 40
	n := grid*grid + 4
	s := newState(Pattern, Static, n)
	idx := 0
	// four large backdrop circles, then a grid of small ones on top
	for q := 0; q < 4; q++ {
		x := 0.25 + 0.5*float32(q%2)
		y := 0.25 + 0.5*float32(q/2)
		set3(s.Position, idx, x, y, 1)
		set3(s.Color, idx, 0.2*float32(q), 0.8-0.2*float32(q), 0.5)
		s.Radius[idx] = 0.3
		idx++
	}
	for gy := 0; gy < grid; gy++ {
		for gx := 0; gx < grid; gx++ {
			x := (float32(gx) + 0.5) / grid
			y := (float32(gy) + 0.5) / grid
			set3(s.Position, idx, x, y, 0)
			if (gx+gy)%2 == 0 {
				set3(s.Color, idx, 1, 0.6, 0.1)
			} else {
				set3(s.Color, idx, 0.1, 0.4, 1)
			}
			s.Radius[idx] = 0.4 / grid
			idx++
		}
	}
	return s
}

func loadBouncingBalls() *State {
	rng := rand.New(rand.NewSource(7))
	s := newState(BouncingBalls, Bouncing, bouncingBallCount)
	for i := 0; i < bouncingBallCount; i++ {
		r := 0.03 + 0.04*rng.Float32()
		set3(s.Position, i, r+(1-2*r)*rng.Float32(), 0.5+0.45*rng.Float32(), 0)
		set3(s.Velocity, i, 0.02*(rng.Float32()-0.5), 0, 0)
		set3(s.Color, i, rng.Float32(), rng.Float32(), rng.Float32())
		s.Radius[i] = r
	}
	return s
}

func loadHypnosis() *State {
	s := newState(Hypnosis, Hypnotic, hypnosisRings)
	for i := 0; i < hypnosisRings; i++ {
		set3(s.Position, i, 0.5, 0.5, 0)
		s.Radius[i] = 0.5 * float32(hypnosisRings-i) / hypnosisRings
	}
	applyHypnosisColors(s, 0, hypnosisRings)
	return s
}

func loadFireworks() *State {
	n := fireworkBursts * fireworkSparks
	s := newState(Fireworks, Burst, n)
	s.burstSize = fireworkSparks
	for i := 0; i < n; i++ {
		launchSpark(s, i, 0)
	}
	return s
}

func loadSnow(name Name, kind Kind) *State {
	rng := rand.New(rand.NewSource(1024))
	s := newState(name, kind, snowflakeCount)
	s.SnowShading = true
	for i := 0; i < snowflakeCount; i++ {
		z := rng.Float32()
		set3(s.Position, i, rng.Float32(), rng.Float32(), z)
		// nearer flakes are larger and fall faster
		set3(s.Velocity, i, 0, -(0.002 + 0.006*(1-z)), 0)
		set3(s.Color, i, 1, 1, 1)
		s.Radius[i] = 0.002 + 0.012*(1-z)
	}
	return sortByDepth(s)
}

func sortByDepth(s *State) *State {
	n := s.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.Position[3*order[a]+2] > s.Position[3*order[b]+2]
	})
	return permute(s, order)
}

func reverseOrder(s *State) {
	n := s.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	*s = *permute(s, order)
}

func permute(s *State, order []int) *State {
	out := newState(s.Scene, s.Kind, s.Len())
	out.SnowShading = s.SnowShading
	out.burstSize = s.burstSize
	for dst, src := range order {
		copy(out.Position[3*dst:3*dst+3], s.Position[3*src:3*src+3])
		copy(out.Velocity[3*dst:3*dst+3], s.Velocity[3*src:3*src+3])
		copy(out.Color[3*dst:3*dst+3], s.Color[3*src:3*src+3])
		out.Radius[dst] = s.Radius[src]
	}
	return out
}

// hash01 returns a deterministic value in [0,1) for (a, b, salt).
func hash01(a, b, salt uint64) float32 {
	x := a*0x9E3779B97F4A7C15 ^ b*0xBF58476D1CE4E5B9 ^ salt*0x94D049BB133111EB
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return float32(x>>40) / float32(1<<24)
}

func angle(v float32) (float32, float32) {
	a := 2 * math.Pi * float64(v)
	return float32(math.Cos(a)), float32(math.Sin(a))
}
