package mu

import "strings"

// registerStringPrimitives wires spec.md §3.2 String-class operations
// plus the immediate short-string forms, both addressed uniformly
// through Heap.StringValue/MakeString where possible.
func registerStringPrimitives(env *Environment) {
	env.defPrimitive("string-length", Arity{Required: 1}, primStringLength)
	env.defPrimitive("string-concat", Arity{HasRest: true}, primStringConcat)
	env.defPrimitive("string-ref", Arity{Required: 2}, primStringRef)
	env.defPrimitive("string-eq", Arity{Required: 2}, primStringEq)
	env.defPrimitive("string-upcase", Arity{Required: 1}, primStringUpcase)
	env.defPrimitive("string-downcase", Arity{Required: 1}, primStringDowncase)
	env.defPrimitive("string-to-symbol", Arity{Required: 1}, primStringToSymbol)
	env.defPrimitive("symbol-to-string", Arity{Required: 1}, primSymbolToString)
}

func stringText(h *Heap, v Value) (string, bool) {
	if h.IsString(v) {
		return h.StringValue(v), true
	}
	if IsImmediateString(v) {
		return ImmediateStringValue(v), true
	}
	return "", false
}

func primStringLength(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("string-length", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "string-length wants a string")
	}
	return MakeFixnum(int64(len(s))), nil
}

func primStringConcat(env *Environment, argv []Value) (Value, error) {
	var sb strings.Builder
	for _, a := range argv {
		s, ok := stringText(env.Heap, a)
		if !ok {
			return NIL, NewConditionError(ClassType, a, "string-concat wants string arguments")
		}
		sb.WriteString(s)
	}
	return env.Heap.MakeString(sb.String()), nil
}

func primStringRef(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("string-ref", argv, 2); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "string-ref wants a string")
	}
	if !IsFixnum(argv[1]) {
		return NIL, NewConditionError(ClassType, argv[1], "string-ref wants a fixnum index")
	}
	i := FixnumValue(argv[1])
	if i < 0 || int(i) >= len(s) {
		return NIL, NewConditionError(ClassRange, argv[1], "string-ref index out of range")
	}
	return MakeChar(s[i]), nil
}

func primStringEq(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("string-eq", argv, 2); err != nil {
		return NIL, err
	}
	a, ok1 := stringText(env.Heap, argv[0])
	b, ok2 := stringText(env.Heap, argv[1])
	if !ok1 || !ok2 {
		return NIL, NewConditionError(ClassType, argv[0], "string-eq wants string arguments")
	}
	return Bool(a == b), nil
}

func primStringUpcase(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("string-upcase", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "string-upcase wants a string")
	}
	return env.Heap.MakeString(strings.ToUpper(s)), nil
}

func primStringDowncase(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("string-downcase", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "string-downcase wants a string")
	}
	return env.Heap.MakeString(strings.ToLower(s)), nil
}

func primStringToSymbol(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("string-to-symbol", argv, 1); err != nil {
		return NIL, err
	}
	s, ok := stringText(env.Heap, argv[0])
	if !ok {
		return NIL, NewConditionError(ClassType, argv[0], "string-to-symbol wants a string")
	}
	return Intern(env.Heap, env.CurrentNamespace, s), nil
}

func primSymbolToString(env *Environment, argv []Value) (Value, error) {
	if err := requireArgCount("symbol-to-string", argv, 1); err != nil {
		return NIL, err
	}
	if !IsHeapSymbol(argv[0]) {
		return NIL, NewConditionError(ClassType, argv[0], "symbol-to-string wants a symbol")
	}
	return env.Heap.MakeString(env.Heap.SymbolName(argv[0])), nil
}
