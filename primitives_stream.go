package mu

// registerStreamPrimitives wires spec.md §4.7's stream operations,
// scoped per SPEC_FULL.md §C to in-memory string buffers, process
// stdio, and plain files (stream.go's streamBackend implementations).
func registerStreamPrimitives(env *Environment) {
	env.defPrimitive("open-input-string", Arity{Required: 1}, primOpenInputString)
	env.defPrimitive("open-output-string", Arity{Required: 0}, primOpenOutputString)
	env.defPrimitive("get-output-string", Arity{Required: 1}, primGetOutputString)
	env.defPrimitive("open-input-file", Arity{Required: 1}, primOpenInputFile)
	env.defPrimitive("open-output-file", Arity{Required: 1}, primOpenOutputFile)
	env.defPrimitive("close", Arity{Required: 1}, primClose)
	env.defPrimitive("read-byte", Arity{Required: 1}, primReadByte)
	env.defPrimitive("write-byte", Arity{Required: 2}, primWriteByte)
	env.defPrimitive("read-char", Arity{Required: 1}, primReadChar)
	env.defPrimitive("write-char", Arity{Required: 2}, primWriteChar)
	env.defPrimitive("write-string", Arity{Required: 2}, primWriteString)
	env.defPrimitive("terpri", Arity{Required: 1}, primTerpri)
	env.defPrimitive("read", Arity{Required: 1}, primRead)
	env.defPrimitive("print", Arity{Required: 2}, primPrintPrim)
	env.defPrimitive("stdin", Arity{Required: 0}, primStdin)
	env.defPrimitive("stdout", Arity{Required: 0}, primStdout)
	env.defPrimitive("stderr", Arity{Required: 0}, primStderr)
}

func requireStream(h *Heap, name string, v Value) error {
	if !h.IsStream(v) {
		return NewConditionError(ClassType, v, name+" wants a stream")
	}
	return nil
}

func primOpenInputString(env *Environment, argv []Value) (Value, error) {
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "open-input-string wants a string")
	}
	return env.OpenInputString(s), nil
}

func primOpenOutputString(env *Environment, argv []Value) (Value, error) {
	stream, _ := env.OpenOutputString()
	return stream, nil
}

func primGetOutputString(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "get-output-string", argv[0]); err != nil {
		return NIL, err
	}
	entry, err := env.streamEntryFor(argv[0])
	if err != nil {
		return NIL, err
	}
	backend, ok := entry.backend.(*stringStreamBackend)
	if !ok || backend.out == nil {
		return NIL, NewConditionError(ClassStream, argv[0], "not an output string stream")
	}
	return env.Heap.MakeString(string(*backend.out)), nil
}

func primOpenInputFile(env *Environment, argv []Value) (Value, error) {
	path, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "open-input-file wants a pathname string")
	}
	return env.OpenInputFile(path)
}

func primOpenOutputFile(env *Environment, argv []Value) (Value, error) {
	path, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "open-output-file wants a pathname string")
	}
	return env.OpenOutputFile(path)
}

func primClose(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "close", argv[0]); err != nil {
		return NIL, err
	}
	return NIL, env.Close(argv[0])
}

func primReadByte(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "read-byte", argv[0]); err != nil {
		return NIL, err
	}
	return env.ReadByte(argv[0])
}

func primWriteByte(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "write-byte", argv[0]); err != nil {
		return NIL, err
	}
	if !IsFixnum(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "write-byte wants a fixnum")
	}
	if err := env.WriteByte(argv[0], byte(FixnumValue(argv[1]))); err != nil {
		return NIL, err
	}
	return argv[1], nil
}

func primReadChar(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "read-char", argv[0]); err != nil {
		return NIL, err
	}
	b, err := env.ReadByte(argv[0])
	if err != nil || Null(b) {
		return NIL, err
	}
	return MakeChar(byte(FixnumValue(b))), nil
}

func primWriteChar(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "write-char", argv[0]); err != nil {
		return NIL, err
	}
	if !IsChar(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "write-char wants a character")
	}
	if err := env.WriteByte(argv[0], CharValue(argv[1])); err != nil {
		return NIL, err
	}
	return argv[1], nil
}

func primWriteString(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "write-string", argv[0]); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[1])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[1], "write-string wants a string")
	}
	if err := env.WriteString(argv[0], s); err != nil {
		return NIL, err
	}
	return argv[1], nil
}

func primTerpri(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "terpri", argv[0]); err != nil {
		return NIL, err
	}
	return NIL, env.Terpri(argv[0])
}

func primRead(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "read", argv[0]); err != nil {
		return NIL, err
	}
	return env.ReadStream(argv[0])
}

func primPrintPrim(env *Environment, argv []Value) (Value, error) {
	if err := requireStream(env.Heap, "print", argv[0]); err != nil {
		return NIL, err
	}
	if err := env.Print(argv[0], argv[1], env.Config.GetBool("printer.escape_default")); err != nil {
		return NIL, err
	}
	return argv[1], nil
}

func primStdin(env *Environment, argv []Value) (Value, error)  { return env.Stdin, nil }
func primStdout(env *Environment, argv []Value) (Value, error) { return env.Stdout, nil }
func primStderr(env *Environment, argv []Value) (Value, error) { return env.Stderr, nil }
