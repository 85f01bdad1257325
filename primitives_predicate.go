package mu

// registerPredicatePrimitives wires the type-predicate family every
// Lisp-family primitive set needs even though spec.md §4 only names
// type-of explicitly; each predicate here is phrased directly against
// the same tag/class tests type-of (types.go) already uses, rather
// than against type-of's keyword result, so a predicate never pays
// for an intermediate keyword allocation.
func registerPredicatePrimitives(env *Environment) {
	env.defPrimitive("null", Arity{Required: 1}, primNull)
	env.defPrimitive("atom", Arity{Required: 1}, primAtom)
	env.defPrimitive("pairp", Arity{Required: 1}, primPairp)
	env.defPrimitive("symbolp", Arity{Required: 1}, primSymbolp)
	env.defPrimitive("functionp", Arity{Required: 1}, primFunctionp)
	env.defPrimitive("macrop", Arity{Required: 1}, primMacrop)
	env.defPrimitive("stringp", Arity{Required: 1}, primStringp)
	env.defPrimitive("fixnump", Arity{Required: 1}, primFixnump)
	env.defPrimitive("floatp", Arity{Required: 1}, primFloatp)
	env.defPrimitive("charp", Arity{Required: 1}, primCharp)
	env.defPrimitive("keywordp", Arity{Required: 1}, primKeywordp)
	env.defPrimitive("vectorp", Arity{Required: 1}, primVectorp)
	env.defPrimitive("streamp", Arity{Required: 1}, primStreamp)
	env.defPrimitive("not", Arity{Required: 1}, primNot)
}

func primNull(env *Environment, argv []Value) (Value, error) {
	return Bool(Null(argv[0])), nil
}

// primAtom mirrors the glossary's definition directly: an atom is
// anything that is not a pair.
func primAtom(env *Environment, argv []Value) (Value, error) {
	return Bool(!IsPair(argv[0])), nil
}

func primPairp(env *Environment, argv []Value) (Value, error) {
	return Bool(IsPair(argv[0])), nil
}

func primSymbolp(env *Environment, argv []Value) (Value, error) {
	return Bool(IsHeapSymbol(argv[0])), nil
}

func primFunctionp(env *Environment, argv []Value) (Value, error) {
	return Bool(IsFunction(argv[0])), nil
}

func primMacrop(env *Environment, argv []Value) (Value, error) {
	return Bool(env.Heap.IsMacro(argv[0])), nil
}

func primStringp(env *Environment, argv []Value) (Value, error) {
	return Bool(env.Heap.IsString(argv[0])), nil
}

func primFixnump(env *Environment, argv []Value) (Value, error) {
	return Bool(IsFixnum(argv[0])), nil
}

func primFloatp(env *Environment, argv []Value) (Value, error) {
	return Bool(IsFloat(argv[0])), nil
}

func primCharp(env *Environment, argv []Value) (Value, error) {
	return Bool(IsChar(argv[0])), nil
}

func primKeywordp(env *Environment, argv []Value) (Value, error) {
	return Bool(IsKeyword(argv[0])), nil
}

func primVectorp(env *Environment, argv []Value) (Value, error) {
	return Bool(env.Heap.IsVector(argv[0])), nil
}

func primStreamp(env *Environment, argv []Value) (Value, error) {
	return Bool(env.Heap.IsStream(argv[0])), nil
}

func primNot(env *Environment, argv []Value) (Value, error) {
	return Bool(Null(argv[0])), nil
}
