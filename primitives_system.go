package mu

import "os"

// registerSystemPrimitives wires SPEC_FULL.md §C's `gc` and `type-of`
// primitives plus a minimal `exit`, none of which spec.md §4.6's fixed
// evaluator core otherwise exposes to running programs.
func registerSystemPrimitives(env *Environment) {
	if env.Config.GetBool("heap.gc_primitive") {
		env.defPrimitive("gc", Arity{Required: 0}, primGC)
	}
	env.defPrimitive("type-of", Arity{Required: 1}, primTypeOf)
	env.defPrimitive("exit", Arity{Required: 1}, primExit)
	env.defPrimitive("conditionp", Arity{Required: 1}, primConditionp)
	env.defPrimitive("condition-class", Arity{Required: 1}, primConditionClass)
	env.defPrimitive("condition-reason", Arity{Required: 1}, primConditionReason)
}

func primGC(env *Environment, argv []Value) (Value, error) {
	return MakeFixnum(int64(env.GC())), nil
}

func primTypeOf(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("type-of", argv, 1); err != nil {
		return NIL, err
	}
	return TypeOf(env.Heap, argv[0]), nil
}

// primExit flushes buffered streams and terminates the process, per
// spec.md §6.2's CLI surface; the evaluator has no other way to stop
// a running program short of signaling a condition.
func primExit(env *Environment, argv []Value) (Value, error) {
	code := 0
	if IsFixnum(argv[0]) {
		code = int(FixnumValue(argv[0]))
	}
	env.flushAll()
	os.Exit(code)
	return NIL, nil
}

func primConditionp(env *Environment, argv []Value) (Value, error) {
	return Bool(env.Heap.IsCondition(argv[0])), nil
}

func primConditionClass(env *Environment, argv []Value) (Value, error) {
	if !env.Heap.IsCondition(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "condition-class wants a condition object")
	}
	return env.Heap.ConditionClass(argv[0]), nil
}

func primConditionReason(env *Environment, argv []Value) (Value, error) {
	if !env.Heap.IsCondition(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "condition-reason wants a condition object")
	}
	return env.Heap.MakeString(env.Heap.ConditionReason(argv[0])), nil
}
