package vm

// Value is a Froth value: every user-visible datum is an integer;
// booleans are represented as -1 (true) and 0 (false), per spec.md 3.
type Value = int64

func boolValue(b bool) Value {
	if b {
		return -1
	}
	return 0
}
