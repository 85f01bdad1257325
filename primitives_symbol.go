package mu

// registerSymbolPrimitives wires namespace/symbol introspection and
// manipulation primitives, per spec.md §4.4's namespace component.
func registerSymbolPrimitives(env *Environment) {
	env.defPrimitive("intern", Arity{Required: 1}, primIntern)
	env.defPrimitive("intern-private", Arity{Required: 1}, primInternPrivate)
	env.defPrimitive("boundp", Arity{Required: 1}, primBoundp)
	env.defPrimitive("symbol-value", Arity{Required: 1}, primSymbolValue)
	env.defPrimitive("set-symbol-value", Arity{Required: 2}, primSetSymbolValue)
	env.defPrimitive("symbol-namespace", Arity{Required: 1}, primSymbolNamespace)
	env.defPrimitive("in-namespace", Arity{Required: 1}, primInNamespace)
	env.defPrimitive("import-namespace", Arity{Required: 2}, primImportNamespace)
	env.defPrimitive("eq", Arity{Required: 2}, primEq)
	env.defPrimitive("closure", Arity{Required: 1}, primClosure)
}

// primClosure backs the reader's `#'form` syntax (reader.go's
// readDispatchMacro): it resolves form down to the function value it
// names, so `#'foo` and plain `foo` evaluate to the same function
// whether foo is a symbol or an expression that already yields one.
func primClosure(env *Environment, argv []Value) (Value, error) {
	v := argv[0]
	if env.Heap.IsMacro(v) || IsFunction(v) {
		return v, nil
	}
	return NIL, NewConditionError(ClassType, v, "closure wants a function value")
}

func primIntern(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("intern", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "intern wants a string")
	}
	return Intern(env.Heap, env.CurrentNamespace, s), nil
}

func primInternPrivate(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("intern-private", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "intern-private wants a string")
	}
	return InternPrivate(env.Heap, env.CurrentNamespace, s), nil
}

func primBoundp(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("boundp", argv, 1); err != nil {
		return NIL, err
	}
	if !IsHeapSymbol(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "boundp wants a symbol")
	}
	return Bool(env.Heap.IsBound(argv[0])), nil
}

func primSymbolValue(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("symbol-value", argv, 1); err != nil {
		return NIL, err
	}
	if !IsHeapSymbol(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "symbol-value wants a symbol")
	}
	if !env.Heap.IsBound(argv[0]) {
		return NIL, NewConditionError(ClassUnsym, argv[0], "unbound symbol: "+env.Heap.SymbolName(argv[0]))
	}
	return env.Heap.SymbolValue(argv[0]), nil
}

func primSetSymbolValue(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("set-symbol-value", argv, 2); err != nil {
		return NIL, err
	}
	if !IsHeapSymbol(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "set-symbol-value wants a symbol")
	}
	env.Heap.SetSymbolValue(argv[0], argv[1])
	return argv[1], nil
}

func primSymbolNamespace(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("symbol-namespace", argv, 1); err != nil {
		return NIL, err
	}
	if !IsHeapSymbol(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "symbol-namespace wants a symbol")
	}
	return env.Heap.SymbolNamespace(argv[0]), nil
}

func primInNamespace(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("in-namespace", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "in-namespace wants a string")
	}
	env.CurrentNamespace = env.EnsureNamespace(s)
	return env.CurrentNamespace, nil
}

func primImportNamespace(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("import-namespace", argv, 2); err != nil {
		return NIL, err
	}
	env.Heap.AddImport(argv[0], argv[1])
	return argv[0], nil
}

func primEq(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("eq", argv, 2); err != nil {
		return NIL, err
	}
	return Bool(argv[0] == argv[1]), nil
}
