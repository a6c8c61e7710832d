package notebook

import "strings"

// State is the lifecycle of a day's notebook: absent, then created, then patched.
type State string

const (
	StateAbsent  State = "absent"
	StateCreated State = "created"
	StatePatched State = "patched"
)

// Inspect reports whether the part 2 description has been filled in yet.
// The caller decides StateAbsent, since that depends on the file existing.
func Inspect(data []byte) (State, error) {
	source, err := CellSource(data, TagPart2)
	if err != nil {
		return "", err
	}
	if source == strings.Join(part2Placeholder, "") {
		return StateCreated, nil
	}
	return StatePatched, nil
}
