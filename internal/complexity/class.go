package complexity

import "fmt"

// Class is an ordinal complexity bucket. Larger is costlier.
type Class uint8

const (
	O1 Class = iota
	OLogN
	ON
	ON2
	ON3
)

var classNames = [...]string{
	O1:    "O(1)",
	OLogN: "O(log n)",
	ON:    "O(n)",
	ON2:   "O(n²)",
	ON3:   "O(n³)",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(b []byte) error {
	for i, name := range classNames {
		if name == string(b) {
			*c = Class(i)
			return nil
		}
	}
	return fmt.Errorf("unknown complexity class %q", b)
}

// timeClass maps loop nesting depth to a time bucket, capped at O(n³).
func timeClass(depth int) Class {
	switch {
	case depth <= 0:
		return O1
	case depth == 1:
		return ON
	case depth == 2:
		return ON2
	default:
		return ON3
	}
}

// spaceClass maps loop nesting depth to a space bucket, capped at O(n).
func spaceClass(depth int) Class {
	switch {
	case depth <= 0:
		return O1
	case depth == 1:
		return OLogN
	default:
		return ON
	}
}
