package scene

import (
	"errors"
	"fmt"
)

var ErrUnknownScene = errors.New("scene: unknown scene name")

type Name int

const (
	CircleRGB Name = iota
	CircleRGBY
	Rand10K
	Rand100K
	Rand1M
	BigLittle
	LittleBig
	Pattern
	Micro2M
	BouncingBalls
	Fireworks
	Hypnosis
	Snowflakes
	SnowflakesSingleFrame
)

// order matches the usage text of the command line.
var sceneNames = []string{
	"rgb", "rgby", "rand10k", "rand100k", "rand1M", "biglittle", "littlebig",
	"pattern", "micro2M", "bouncingballs", "fireworks", "hypnosis", "snow", "snowsingle",
}

func (n Name) String() string {
	if n < 0 || int(n) >= len(sceneNames) {
		return fmt.Sprintf("scene(%d)", int(n))
	}
	return sceneNames[n]
}

// Parse maps a command line scene name to a Name. Matching is case sensitive.
func Parse(s string) (Name, error) {
	for i, name := range sceneNames {
		if name == s {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownScene, s)
}

func Names() []string {
	out := make([]string, len(sceneNames))
	copy(out, sceneNames)
	return out
}
