package childprocess

// Spawn returns an inert Child for file with args and default options.
func Spawn(file string, args ...string) *Child {
	return newChild(file, args, Options{})
}

// SpawnWithArgs returns an inert Child for file with args and opts.
func SpawnWithArgs(file string, args []string, opts Options) *Child {
	return newChild(file, args, opts)
}

// SpawnWithOptions returns an inert Child for file with no arguments.
func SpawnWithOptions(file string, opts Options) *Child {
	return newChild(file, nil, opts)
}
