package mu

// registerListPrimitives wires the cons-family primitives of
// SPEC_FULL.md §C, grounded on the reference's mu-cons.cc.
func registerListPrimitives(env *Environment) {
	env.defPrimitive("cons", Arity{Required: 2}, primCons)
	env.defPrimitive("car", Arity{Required: 1}, primCar)
	env.defPrimitive("cdr", Arity{Required: 1}, primCdr)
	env.defPrimitive("set-car", Arity{Required: 2}, primSetCar)
	env.defPrimitive("set-cdr", Arity{Required: 2}, primSetCdr)
	env.defPrimitive("list", Arity{HasRest: true}, primList)
	env.defPrimitive("length", Arity{Required: 1}, primLength)
	env.defPrimitive("mapcar", Arity{Required: 2}, primMapcar)
	env.defPrimitive("mapc", Arity{Required: 2}, primMapc)
	env.defPrimitive("reverse", Arity{Required: 1}, primReverse)
	env.defPrimitive("append", Arity{HasRest: true}, primAppend)
}

func requirePair(name string, v Value) error {
	if !IsPair(v) {
		return NewConditionError(ClassCell, v, name+" wants a pair")
	}
	return nil
}

func primCons(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("cons", argv, 2); err != nil {
		return NIL, err
	}
	return env.Heap.Cons(argv[0], argv[1]), nil
}

func primCar(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("car", argv, 1); err != nil {
		return NIL, err
	}
	if Null(argv[0]) {
		return NIL, nil
	}
	if err := requirePair("car", argv[0]); err != nil {
		return NIL, err
	}
	return env.Heap.Car(argv[0]), nil
}

func primCdr(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("cdr", argv, 1); err != nil {
		return NIL, err
	}
	if Null(argv[0]) {
		return NIL, nil
	}
	if err := requirePair("cdr", argv[0]); err != nil {
		return NIL, err
	}
	return env.Heap.Cdr(argv[0]), nil
}

func primSetCar(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("set-car", argv, 2); err != nil {
		return NIL, err
	}
	if err := requirePair("set-car", argv[0]); err != nil {
		return NIL, err
	}
	env.Heap.SetCar(argv[0], argv[1])
	return argv[1], nil
}

func primSetCdr(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("set-cdr", argv, 2); err != nil {
		return NIL, err
	}
	if err := requirePair("set-cdr", argv[0]); err != nil {
		return NIL, err
	}
	env.Heap.SetCdr(argv[0], argv[1])
	return argv[1], nil
}

func primList(env *Environment, argv []Value) (Value, error) {
	return env.Heap.SliceToList(argv), nil
}

func primLength(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("length", argv, 1); err != nil {
		return NIL, err
	}
	return MakeFixnum(int64(env.Heap.ListLength(argv[0]))), nil
}

func primMapcar(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("mapcar", argv, 2); err != nil {
		return NIL, err
	}
	fn := argv[0]
	items := env.Heap.ListToSlice(argv[1])
	out := make([]Value, len(items))
	for i, it := range items {
		v, err := env.Apply(fn, []Value{it})
		if err != nil {
			return NIL, err
		}
		out[i] = v
	}
	return env.Heap.SliceToList(out), nil
}

func primMapc(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("mapc", argv, 2); err != nil {
		return NIL, err
	}
	fn := argv[0]
	items := env.Heap.ListToSlice(argv[1])
	for _, it := range items {
		if _, err := env.Apply(fn, []Value{it}); err != nil {
			return NIL, err
		}
	}
	return argv[1], nil
}

func primReverse(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("reverse", argv, 1); err != nil {
		return NIL, err
	}
	items := env.Heap.ListToSlice(argv[0])
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return env.Heap.SliceToList(items), nil
}

func primAppend(env *Environment, argv []Value) (Value, error) {
	var out []Value
	for _, a := range argv {
		out = append(out, env.Heap.ListToSlice(a)...)
	}
	return env.Heap.SliceToList(out), nil
}
