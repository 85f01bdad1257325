package mu

// registerArithPrimitives wires the fixnum/float arithmetic primitive
// set of spec.md §4.6, grounded on the reference's mu-fixnum.cc/
// mu-float.cc overflow and divide-by-zero taxonomy (spec.md §7).
func registerArithPrimitives(env *Environment) {
	env.defPrimitive("fx-add", Arity{Required: 2}, primFxAdd)
	env.defPrimitive("fx-sub", Arity{Required: 2}, primFxSub)
	env.defPrimitive("fx-mul", Arity{Required: 2}, primFxMul)
	env.defPrimitive("fx-div", Arity{Required: 2}, primFxDiv)
	env.defPrimitive("fx-mod", Arity{Required: 2}, primFxMod)
	env.defPrimitive("fx-lt", Arity{Required: 2}, primFxLt)
	env.defPrimitive("fx-eq", Arity{Required: 2}, primFxEq)
	env.defPrimitive("fl-add", Arity{Required: 2}, primFlAdd)
	env.defPrimitive("fl-sub", Arity{Required: 2}, primFlSub)
	env.defPrimitive("fl-mul", Arity{Required: 2}, primFlMul)
	env.defPrimitive("fl-div", Arity{Required: 2}, primFlDiv)
}

func fixnumArgs(name string, argv []Value) (int64, int64, error) {
	if err := requireArgCount(name, argv, 2); err != nil {
		return 0, 0, err
	}
	if !IsFixnum(argv[0]) || !IsFixnum(argv[1]) {
		return 0, 0, NewConditionError(ClassType, argv[0], name+" wants fixnum arguments")
	}
	return FixnumValue(argv[0]), FixnumValue(argv[1]), nil
}

func checkedFixnum(n int64) (Value, error) {
	if !FixnumInRange(n) {
		return NIL, NewConditionError(ClassFPOver, NIL, "fixnum overflow")
	}
	return MakeFixnum(n), nil
}

func primFxAdd(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-add", argv)
	if err != nil {
		return NIL, err
	}
	return checkedFixnum(a + b)
}

func primFxSub(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-sub", argv)
	if err != nil {
		return NIL, err
	}
	return checkedFixnum(a - b)
}

func primFxMul(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-mul", argv)
	if err != nil {
		return NIL, err
	}
	return checkedFixnum(a * b)
}

func primFxDiv(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-div", argv)
	if err != nil {
		return NIL, err
	}
	if b == 0 {
		return NIL, NewConditionError(ClassZeroDiv, argv[1], "division by zero")
	}
	return checkedFixnum(a / b)
}

func primFxMod(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-mod", argv)
	if err != nil {
		return NIL, err
	}
	if b == 0 {
		return NIL, NewConditionError(ClassZeroDiv, argv[1], "modulo by zero")
	}
	return checkedFixnum(a % b)
}

func primFxLt(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-lt", argv)
	if err != nil {
		return NIL, err
	}
	return Bool(a < b), nil
}

func primFxEq(env *Environment, argv []Value) (Value, error) {
	a, b, err := fixnumArgs("fx-eq", argv)
	if err != nil {
		return NIL, err
	}
	return Bool(a == b), nil
}

func floatArgs(name string, argv []Value) (float32, float32, error) {
	if err := requireArgCount(name, argv, 2); err != nil {
		return 0, 0, err
	}
	if !IsFloat(argv[0]) || !IsFloat(argv[1]) {
		return 0, 0, NewConditionError(ClassType, argv[0], name+" wants float arguments")
	}
	return FloatValue(argv[0]), FloatValue(argv[1]), nil
}

func primFlAdd(env *Environment, argv []Value) (Value, error) {
	a, b, err := floatArgs("fl-add", argv)
	if err != nil {
		return NIL, err
	}
	return MakeFloat(a + b), nil
}

func primFlSub(env *Environment, argv []Value) (Value, error) {
	a, b, err := floatArgs("fl-sub", argv)
	if err != nil {
		return NIL, err
	}
	return MakeFloat(a - b), nil
}

func primFlMul(env *Environment, argv []Value) (Value, error) {
	a, b, err := floatArgs("fl-mul", argv)
	if err != nil {
		return NIL, err
	}
	return MakeFloat(a * b), nil
}

func primFlDiv(env *Environment, argv []Value) (Value, error) {
	a, b, err := floatArgs("fl-div", argv)
	if err != nil {
		return NIL, err
	}
	if b == 0 {
		return NIL, NewConditionError(ClassFPInv, argv[1], "float division by zero")
	}
	return MakeFloat(a / b), nil
}
