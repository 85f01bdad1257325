package mu

// registerControlPrimitives wires non-local exit and condition
// signaling. Both ride the same mechanism: an *unwind error value
// threaded up through ordinary (Value, error) returns from Eval/Apply
// (errors.go), never a panic/recover, per spec.md's Design Notes.
//
// block/return take an explicit thunk (a zero-argument function)
// rather than an unevaluated body form, since this evaluator's
// special-operator set (compiler.go) is fixed to spec.md §4.5's list;
// source code wanting `(block tag body...)` sugar wraps body in
// `(:lambda () body...)` at the call site.
func registerControlPrimitives(env *Environment) {
	env.defPrimitive("block", Arity{Required: 2}, primBlock)
	env.defPrimitive("return", Arity{Required: 2}, primReturn)
	env.defPrimitive("with-condition", Arity{Required: 3}, primWithCondition)
	env.defPrimitive("raise", Arity{Required: 3}, primRaise)
	env.defPrimitive("raise-condition", Arity{Required: 1}, primRaiseCondition)
}

func primBlock(env *Environment, argv []Value) (Value, error) {
	tag, thunk := argv[0], argv[1]
	v, err := env.Apply(thunk, nil)
	if err == nil {
		return v, nil
	}
	if uw, ok := asUnwind(err); ok && uw.Condition == nil && uw.Tag == tag {
		return uw.Value, nil
	}
	return NIL, err
}

func primReturn(env *Environment, argv []Value) (Value, error) {
	tag, val := argv[0], argv[1]
	return NIL, &unwind{Tag: tag, Value: val}
}

// primWithCondition evaluates thunk; if it signals a condition whose
// class matches (or class is :simple, meaning "catch anything"), it
// boxes the condition onto the heap and calls handler with it instead
// of propagating, per spec.md §7's with-condition/raise contract.
func primWithCondition(env *Environment, argv []Value) (Value, error) {
	classKw, thunk, handler := argv[0], argv[1], argv[2]
	if !IsKeyword(classKw) {
		return NIL, NewConditionError(ClassType, classKw, "with-condition wants a class keyword")
	}
	class := ConditionClass(KeywordName(classKw))
	return env.WithCondition(class, func() (Value, error) {
		return env.Apply(thunk, nil)
	}, func(boxed Value) (Value, error) {
		return env.Apply(handler, []Value{boxed})
	})
}

func primRaise(env *Environment, argv []Value) (Value, error) {
	classKw, source := argv[0], argv[1]
	if !IsKeyword(classKw) {
		return NIL, NewConditionError(ClassType, classKw, "raise wants a class keyword")
	}
	reason, _ := stringText(env.Heap, argv[2])
	cond := &Condition{Class: ConditionClass(KeywordName(classKw)), Source: source, Reason: reason}
	if env.frames.len() > 0 {
		cond.Frame = env.frames.top().FrameID
	}
	return NIL, &unwind{Condition: cond}
}

func primRaiseCondition(env *Environment, argv []Value) (Value, error) {
	boxed := argv[0]
	if !env.Heap.IsCondition(boxed) {
		return NIL, NewConditionError(ClassType, boxed, "raise-condition wants a condition object")
	}
	classKw := env.Heap.ConditionClass(boxed)
	cond := &Condition{
		Class:  ConditionClass(KeywordName(classKw)),
		Source: env.Heap.ConditionSource(boxed),
		Reason: env.Heap.ConditionReason(boxed),
		Frame:  FixnumValue(env.Heap.ConditionFrame(boxed)),
	}
	return NIL, &unwind{Condition: cond}
}
