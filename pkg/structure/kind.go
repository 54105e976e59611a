package structure

import "fmt"

// Kind names a container implementation.
type Kind int

const (
	KindStack Kind = iota
	KindQueue
	KindArray
	KindGraph
)

func (k Kind) String() string {
	switch k {
	case KindStack:
		return "Stack"
	case KindQueue:
		return "Queue"
	case KindArray:
		return "Array"
	case KindGraph:
		return "Graph"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a case-sensitive lower- or title-case kind name.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "stack", "Stack":
		return KindStack, nil
	case "queue", "Queue":
		return KindQueue, nil
	case "array", "Array":
		return KindArray, nil
	case "graph", "Graph":
		return KindGraph, nil
	}
	return 0, fmt.Errorf("unknown container kind %q", name)
}
