package cost

import "fmt"

// Cost is a (hard, soft) pair ordered lexicographically: hard dominates soft
type Cost struct {
	Hard uint64
	Soft uint64
}

var Zero = Cost{}

func New(hard, soft uint64) Cost {
	return Cost{Hard: hard, Soft: soft}
}

func Hard(value uint64) Cost {
	return Cost{Hard: value}
}

func Soft(value uint64) Cost {
	return Cost{Soft: value}
}

func (c Cost) Add(other Cost) Cost {
	return Cost{Hard: c.Hard + other.Hard, Soft: c.Soft + other.Soft}
}

// Sub subtracts componentwise. The caller must guarantee other <= c on both components
func (c Cost) Sub(other Cost) Cost {
	if other.Hard > c.Hard || other.Soft > c.Soft {
		panic(fmt.Sprintf("cost underflow: %v - %v", c, other))
	}
	return Cost{Hard: c.Hard - other.Hard, Soft: c.Soft - other.Soft}
}

func (c Cost) IsZero() bool {
	return c.Hard == 0 && c.Soft == 0
}

// Compare returns -1, 0 or 1 depending on whether c is smaller, equal or greater than other
func (c Cost) Compare(other Cost) int {
	switch {
	case c.Hard < other.Hard:
		return -1
	case c.Hard > other.Hard:
		return 1
	case c.Soft < other.Soft:
		return -1
	case c.Soft > other.Soft:
		return 1
	}
	return 0
}

func (c Cost) Less(other Cost) bool {
	return c.Compare(other) < 0
}

func (c Cost) String() string {
	return fmt.Sprintf("(%d, %d)", c.Hard, c.Soft)
}

// IsBetter reports whether a is strictly better than b. Equal costs are never better, so ties keep the incumbent
func IsBetter(a, b Cost) bool {
	return a.Hard < b.Hard || (a.Hard == b.Hard && a.Soft < b.Soft)
}

// Delta flattens the change from -> to into a scalar where one unit of hard cost weighs hardWeight units of soft cost
func Delta(from, to Cost, hardWeight float64) float64 {
	hard := float64(to.Hard) - float64(from.Hard)
	soft := float64(to.Soft) - float64(from.Soft)
	return hard*hardWeight + soft
}
