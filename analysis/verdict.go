package analysis

// The outcome of a reachability check
type Verdict int

const (
	// No target state is reachable
	Safe Verdict = iota
	// Some target state is reachable
	Unsafe
)

func (v Verdict) String() string {
	switch v {
	case Safe:
		return "Safe"
	case Unsafe:
		return "Unsafe"
	default:
		return "Unknown"
	}
}
