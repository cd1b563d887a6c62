package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/samber/lo"
)

type MeetAssignment struct {
	Event    string `json:"event"`
	Duration int    `json:"duration"`
	Start    int    `json:"start"`
	Time     string `json:"time,omitempty"`
	Room     string `json:"room,omitempty"`
}

type Output struct {
	Instance string           `json:"instance"`
	Cost     cost.Cost        `json:"cost"`
	Kinds    []KindCost       `json:"kinds"`
	Meets    []MeetAssignment `json:"meets"`
	Defects  []string         `json:"defects"`
}

// Assignment lists every meet with its time and room names
func (soln *Solution) Assignment() []MeetAssignment {
	return lo.Map(soln.meets, func(meet Meet, _ int) MeetAssignment {
		assignment := MeetAssignment{
			Event:    soln.instance.Events[meet.Event].Name,
			Duration: meet.Duration,
			Start:    meet.Start,
		}
		if meet.Assigned() {
			assignment.Time = soln.instance.Times[meet.Start]
		}
		if meet.Room >= 0 {
			assignment.Room = soln.instance.Resources[meet.Room].Name
		}
		return assignment
	})
}

func (soln *Solution) Output() Output {
	return Output{
		Instance: soln.instance.Name,
		Cost:     soln.Cost(),
		Kinds:    soln.CostByKind(),
		Meets:    soln.Assignment(),
		Defects:  soln.Defects(),
	}
}

func (soln *Solution) WriteJson(writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(soln.Output()); err != nil {
		return fmt.Errorf("cannot encode solution: %w", err)
	}
	return nil
}

func (soln *Solution) WriteJsonFile(file string) error {
	output, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("cannot create %v: %w", file, err)
	}
	defer output.Close()
	return soln.WriteJson(output)
}

// ReadJson rebuilds a solution of instance from the output written by WriteJson
func ReadJson(instance *Instance, reader io.Reader) (*Solution, error) {
	var output Output
	if err := json.NewDecoder(reader).Decode(&output); err != nil {
		return nil, fmt.Errorf("cannot decode solution: %w", err)
	}

	events := lo.SliceToMap(instance.Events, func(event Event) (string, int) { return event.Name, event.Id })
	resources := lo.SliceToMap(instance.Resources, func(resource Resource) (string, int) { return resource.Name, resource.Id })
	durations := make(map[int]int)

	meets := make([]Meet, 0, len(output.Meets))
	for i, assignment := range output.Meets {
		event, ok := events[assignment.Event]
		if !ok {
			return nil, fmt.Errorf("meet %d references unknown event \"%v\"", i, assignment.Event)
		}
		meet := Meet{Event: event, Duration: assignment.Duration, Start: assignment.Start, Room: -1}
		if meet.Duration <= 0 || meet.Start < -1 || (meet.Assigned() && meet.Start+meet.Duration > len(instance.Times)) {
			return nil, fmt.Errorf("meet %d of \"%v\" has invalid start %d or duration %d", i, assignment.Event, meet.Start, meet.Duration)
		}
		if assignment.Room != "" {
			room, ok := resources[assignment.Room]
			if !ok || instance.Resources[room].Kind != ResourceRoom {
				return nil, fmt.Errorf("meet %d of \"%v\" references unknown room \"%v\"", i, assignment.Event, assignment.Room)
			}
			meet.Room = room
		}
		durations[event] += meet.Duration
		meets = append(meets, meet)
	}

	for _, event := range instance.Events {
		if durations[event.Id] != event.Duration {
			return nil, fmt.Errorf("meets of \"%v\" last %d instead of %d", event.Name, durations[event.Id], event.Duration)
		}
	}
	return newSolution(instance, meets), nil
}

func ReadJsonFile(instance *Instance, file string) (*Solution, error) {
	input, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open %v: %w", file, err)
	}
	defer input.Close()
	return ReadJson(instance, input)
}
