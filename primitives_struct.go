package mu

// registerStructPrimitives wires SPEC_FULL.md §C's struct primitives,
// a simple (name . value) alist attached to a type keyword.
func registerStructPrimitives(env *Environment) {
	env.defPrimitive("make-struct", Arity{Required: 1, HasRest: true}, primMakeStruct)
	env.defPrimitive("struct-type", Arity{Required: 1}, primStructType)
	env.defPrimitive("struct-ref", Arity{Required: 2}, primStructRef)
	env.defPrimitive("struct-set", Arity{Required: 3}, primStructSet)
	env.defPrimitive("structp", Arity{Required: 1}, primStructp)
}

// primMakeStruct expects (type :slot1 val1 :slot2 val2 ...).
func primMakeStruct(env *Environment, argv []Value) (Value, error) {
	typ := argv[0]
	if !IsKeyword(typ) {
		return NIL, NewConditionError(ClassType, typ, "make-struct wants a type keyword")
	}
	rest := argv[1:]
	if len(rest)%2 != 0 {
		return NIL, NewConditionError(ClassParse, typ, "make-struct wants slot/value pairs")
	}
	var slots Value = NIL
	for i := len(rest) - 2; i >= 0; i -= 2 {
		slotKw := rest[i]
		if !IsKeyword(slotKw) {
			return NIL, NewConditionError(ClassType, slotKw, "make-struct slot name must be a keyword")
		}
		name := env.Heap.MakeString(KeywordName(slotKw))
		slots = env.Heap.Cons(env.Heap.Cons(name, rest[i+1]), slots)
	}
	return env.Heap.NewStruct(typ, slots), nil
}

func requireStruct(h *Heap, name string, v Value) error {
	if !h.IsStruct(v) {
		return NewConditionError(ClassType, v, name+" wants a struct")
	}
	return nil
}

func primStructType(env *Environment, argv []Value) (Value, error) {
	if err := requireStruct(env.Heap, "struct-type", argv[0]); err != nil {
		return NIL, err
	}
	return env.Heap.StructType(argv[0]), nil
}

func primStructRef(env *Environment, argv []Value) (Value, error) {
	if err := requireStruct(env.Heap, "struct-ref", argv[0]); err != nil {
		return NIL, err
	}
	if !IsKeyword(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "struct-ref wants a slot keyword")
	}
	val, ok := env.Heap.StructRef(argv[0], KeywordName(argv[1]))
	if !ok {
		return NIL, NewConditionError(ClassUnslot, argv[1], "no such slot: "+KeywordName(argv[1]))
	}
	return val, nil
}

func primStructSet(env *Environment, argv []Value) (Value, error) {
	if err := requireStruct(env.Heap, "struct-set", argv[0]); err != nil {
		return NIL, err
	}
	if !IsKeyword(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "struct-set wants a slot keyword")
	}
	env.Heap.StructSet(argv[0], KeywordName(argv[1]), argv[2])
	return argv[2], nil
}

func primStructp(env *Environment, argv []Value) (Value, error) {
	return Bool(env.Heap.IsStruct(argv[0])), nil
}
