package mu

// registerVectorPrimitives wires spec.md §3.2 Vector-class operations.
func registerVectorPrimitives(env *Environment) {
	env.defPrimitive("make-vector", Arity{Required: 2}, primMakeVector)
	env.defPrimitive("vector-length", Arity{Required: 1}, primVectorLength)
	env.defPrimitive("vector-ref", Arity{Required: 2}, primVectorRef)
	env.defPrimitive("vector-set", Arity{Required: 3}, primVectorSet)
	env.defPrimitive("vector-to-list", Arity{Required: 1}, primVectorToList)
	env.defPrimitive("list-to-vector", Arity{Required: 2}, primListToVector)
}

func primMakeVector(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("make-vector", argv, 2); err != nil {
		return NIL, err
	}
	class, ok := vectorElementClassFromKeyword(argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "make-vector wants an element-class keyword")
	}
	if !IsFixnum(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "make-vector wants a fixnum length")
	}
	n := int(FixnumValue(argv[1]))
	if n < 0 {
		return NIL, NewConditionError(ClassRange, argv[1], "make-vector wants a non-negative length")
	}
	return env.Heap.MakeVector(class, n), nil
}

func requireVector(h *Heap, name string, v Value) error {
	if !IsExtended(v) || h.classOf(heapOffset(v)) != classVector {
		return NewConditionError(ClassType, v, name+" wants a vector")
	}
	return nil
}

func primVectorLength(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("vector-length", argv, 1); err != nil {
		return NIL, err
	}
	if err := requireVector(env.Heap, "vector-length", argv[0]); err != nil {
		return NIL, err
	}
	return MakeFixnum(int64(env.Heap.VectorLength(argv[0]))), nil
}

func primVectorRef(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("vector-ref", argv, 2); err != nil {
		return NIL, err
	}
	if err := requireVector(env.Heap, "vector-ref", argv[0]); err != nil {
		return NIL, err
	}
	if !IsFixnum(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "vector-ref wants a fixnum index")
	}
	i := int(FixnumValue(argv[1]))
	if i < 0 || i >= env.Heap.VectorLength(argv[0]) {
		return NIL, NewConditionError(ClassRange, argv[1], "vector-ref index out of range")
	}
	return env.Heap.VectorRef(argv[0], i), nil
}

func primVectorSet(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("vector-set", argv, 3); err != nil {
		return NIL, err
	}
	if err := requireVector(env.Heap, "vector-set", argv[0]); err != nil {
		return NIL, err
	}
	if !IsFixnum(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "vector-set wants a fixnum index")
	}
	i := int(FixnumValue(argv[1]))
	if i < 0 || i >= env.Heap.VectorLength(argv[0]) {
		return NIL, NewConditionError(ClassRange, argv[1], "vector-set index out of range")
	}
	env.Heap.VectorSet(argv[0], i, argv[2])
	return argv[2], nil
}

func primVectorToList(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("vector-to-list", argv, 1); err != nil {
		return NIL, err
	}
	if err := requireVector(env.Heap, "vector-to-list", argv[0]); err != nil {
		return NIL, err
	}
	return env.Heap.VectorToList(argv[0]), nil
}

func primListToVector(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("list-to-vector", argv, 2); err != nil {
		return NIL, err
	}
	class, ok := vectorElementClassFromKeyword(argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "list-to-vector wants an element-class keyword")
	}
	return env.Heap.ListToVector(class, argv[1]), nil
}
