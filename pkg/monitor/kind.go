package monitor

import "fmt"

// Kind tags a monitor with the constraint it watches (or marks it as a group)
type Kind int

const (
	KindGroup Kind = iota
	KindAssignTime
	KindAvoidClashes
	KindAvoidUnavailableTimes
	KindLimitBusyTimes
	KindSplitEvents
)

var kindNames = map[Kind]string{
	KindGroup:                 "group",
	KindAssignTime:            "assign-time",
	KindAvoidClashes:          "avoid-clashes",
	KindAvoidUnavailableTimes: "avoid-unavailable-times",
	KindLimitBusyTimes:        "limit-busy-times",
	KindSplitEvents:           "split-events",
}

// ConstraintKinds lists every non-group kind in reporting order
var ConstraintKinds = []Kind{
	KindAssignTime,
	KindAvoidClashes,
	KindAvoidUnavailableTimes,
	KindLimitBusyTimes,
	KindSplitEvents,
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(kind))
}

func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name && kind != KindGroup {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown constraint kind \"%v\"", name)
}
