package childprocess

// State is the lifecycle state of a Child.
type State int

const (
	// StatePending is the state of a Child that has not been started.
	StatePending State = iota

	// StateSpawning is the state while the process is being created.
	StateSpawning

	// StateRunning is the state once the process has been created.
	StateRunning

	// StateExited is the state after the process terminated.
	StateExited

	// StateSpawnFailed is the state of a Child whose process could not be
	// created.
	StateSpawnFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateSpawnFailed:
		return "spawn-failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == StateExited || s == StateSpawnFailed
}
