package tracker

import (
	"github.com/pkg/errors"
)

// Exercise identifies one entry of the fixed exercise catalog.
type Exercise string

const (
	ChestPress Exercise = "chestPress"
	PullUp     Exercise = "pullUp"
	Squat      Exercise = "squat"
)

// ExerciseInfo is the display metadata for an exercise.
type ExerciseInfo struct {
	Name string
	Icon string
}

var exerciseInfo = map[Exercise]ExerciseInfo{
	ChestPress: {Name: "Chest Press", Icon: "💪"},
	PullUp:     {Name: "Pull Up", Icon: "🧗"},
	Squat:      {Name: "Squat", Icon: "🦵"},
}

var exerciseOrder = []Exercise{ChestPress, PullUp, Squat}

// Exercises returns the catalog in display order.
func Exercises() []Exercise {
	ret := make([]Exercise, len(exerciseOrder))
	copy(ret, exerciseOrder)
	return ret
}

// Info returns the display metadata for e. Unknown exercises get their raw
// identifier as name.
func (e Exercise) Info() ExerciseInfo {
	if info, ok := exerciseInfo[e]; ok {
		return info
	}
	return ExerciseInfo{Name: string(e)}
}

func (e Exercise) Valid() bool {
	_, ok := exerciseInfo[e]
	return ok
}

// Index is the position of e in the catalog, or -1.
func (e Exercise) Index() int {
	for i, other := range exerciseOrder {
		if other == e {
			return i
		}
	}
	return -1
}

// ParseExercise accepts the catalog identifier (e.g. "pullUp").
func ParseExercise(s string) (Exercise, error) {
	e := Exercise(s)
	if !e.Valid() {
		return "", errors.Errorf("unknown exercise %q", s)
	}
	return e, nil
}
