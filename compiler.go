package mu

// kwQuote etc. name the fixed set of special operators spec.md §4.5
// recognizes at compile time. Each is a short immediate keyword, so
// comparing compiled operators is a plain Value equality check.
var (
	kwQuote    = MakeKeyword("quote")
	kwLambda   = MakeKeyword("lambda")
	kwMacro    = MakeKeyword("macro")
	kwDefsym   = MakeKeyword("defsym")
	kwLetq     = MakeKeyword("letq")
	kwT        = MakeKeyword("t")
	kwNil      = MakeKeyword("nil")
	kwFrameRef = MakeKeyword("frmref")
	kwSetLocal = MakeKeyword("setloc")
	kwRest     = MakeKeyword("rest")
)

// lexScope is one lambda/macro's compile-time frame: the ordered
// names occupying its Argv slots (parameters first, then any :letq
// locals introduced as its body compiles), per spec.md §4.5's
// lexical-resolution pass.
type lexScope struct {
	frameID int64
	names   []string
}

// compileState threads the enclosing lexical scope chain (innermost
// last) through one Compile call. It never touches the heap except to
// read already-interned symbols, so it carries no GC roots itself.
type compileState struct {
	env    *Environment
	scopes []*lexScope
}

// Compile lowers form into the evaluator's compiled representation:
// macros expanded, lexical variable references rewritten to
// `(:frmref depth index)`, and the fixed special-operator set
// recognized and tagged, per spec.md §4.5.
func (env *Environment) Compile(form Value) (Value, error) {
	cs := &compileState{env: env}
	return cs.compile(form)
}

func (cs *compileState) compile(form Value) (Value, error) {
	h := cs.env.Heap
	switch {
	case IsFixnum(form), IsFloat(form), IsChar(form), IsKeyword(form), IsImmediateString(form), Null(form), form == T:
		return form, nil
	case h.IsString(form):
		return form, nil
	case IsHeapSymbol(form):
		return cs.compileSymbolRef(form)
	case IsPair(form):
		return cs.compilePair(form)
	default:
		return form, nil
	}
}

func (cs *compileState) compileSymbolRef(sym Value) (Value, error) {
	h := cs.env.Heap
	name := h.SymbolName(sym)
	if depth, idx, ok := cs.resolve(name); ok {
		return h.SliceToList([]Value{kwFrameRef, MakeFixnum(int64(depth)), MakeFixnum(int64(idx))}), nil
	}
	return sym, nil
}

func (cs *compileState) resolve(name string) (depth, index int, ok bool) {
	for i := len(cs.scopes) - 1; i >= 0; i-- {
		scope := cs.scopes[i]
		for j, n := range scope.names {
			if n == name {
				return len(cs.scopes) - 1 - i, j, true
			}
		}
	}
	return 0, 0, false
}

func (cs *compileState) compilePair(form Value) (Value, error) {
	h := cs.env.Heap
	op := h.Car(form)
	args := h.Cdr(form)

	if IsKeyword(op) {
		switch {
		case op == kwQuote:
			return form, nil
		case op == kwLambda:
			return cs.compileLambda(args, false)
		case op == kwMacro:
			return cs.compileLambda(args, true)
		case op == kwDefsym:
			return cs.compileDefsym(args)
		case op == kwLetq:
			return cs.compileLetq(args)
		case op == kwT:
			return T, nil
		case op == kwNil:
			return NIL, nil
		}
	}

	if IsHeapSymbol(op) && h.IsBound(op) {
		val := h.SymbolValue(op)
		if h.IsMacro(val) {
			expanded, err := cs.env.applyMacro(val, h.ListToSlice(args))
			if err != nil {
				return NIL, err
			}
			return cs.compile(expanded)
		}
	}

	items := h.ListToSlice(form)
	compiled := make([]Value, len(items))
	for i, item := range items {
		c, err := cs.compile(item)
		if err != nil {
			return NIL, err
		}
		compiled[i] = c
	}
	return h.SliceToList(compiled), nil
}

// compileLambda handles both :lambda and :macro, which share a
// parameter list and body shape; isMacro controls only whether the
// resulting Function is wrapped in a Macro cell at eval time.
func (cs *compileState) compileLambda(args Value, isMacro bool) (Value, error) {
	h := cs.env.Heap
	items := h.ListToSlice(args)
	if len(items) < 1 {
		return NIL, NewConditionError(ClassParse, args, "lambda/macro missing parameter list")
	}
	params, arity, err := cs.parseParamList(items[0])
	if err != nil {
		return NIL, err
	}
	frameID := cs.env.nextFrameID
	cs.env.nextFrameID++

	scope := &lexScope{frameID: frameID, names: params}
	cs.scopes = append(cs.scopes, scope)

	var compiledBody []Value
	for _, bf := range items[1:] {
		cb, err := cs.compile(bf)
		if err != nil {
			cs.scopes = cs.scopes[:len(cs.scopes)-1]
			return NIL, err
		}
		compiledBody = append(compiledBody, cb)
	}
	cs.scopes = cs.scopes[:len(cs.scopes)-1]

	tag := kwLambda
	if isMacro {
		tag = kwMacro
	}
	head := []Value{tag, MakeFixnum(frameID), MakeFixnum(encodeArity(arity))}
	return h.SliceToList(append(head, compiledBody...)), nil
}

// parseParamList validates and flattens a parameter list, rejecting
// duplicate names and keyword-as-name per spec.md §4.5's edge cases.
func (cs *compileState) parseParamList(paramsForm Value) ([]string, Arity, error) {
	h := cs.env.Heap
	items := h.ListToSlice(paramsForm)
	var names []string
	seen := make(map[string]bool)
	hasRest := false
	required := 0
	for i := 0; i < len(items); i++ {
		p := items[i]
		if p == kwRest {
			if i+1 >= len(items) {
				return nil, Arity{}, NewConditionError(ClassParse, paramsForm, ":rest missing a following name")
			}
			restSym := items[i+1]
			if !IsHeapSymbol(restSym) {
				return nil, Arity{}, NewConditionError(ClassParse, paramsForm, ":rest parameter must be a symbol")
			}
			name := h.SymbolName(restSym)
			if seen[name] {
				return nil, Arity{}, NewConditionError(ClassParse, paramsForm, "duplicate parameter name: "+name)
			}
			seen[name] = true
			names = append(names, name)
			hasRest = true
			i++
			continue
		}
		if IsKeyword(p) {
			return nil, Arity{}, NewConditionError(ClassParse, paramsForm, "keyword cannot be used as a parameter name")
		}
		if !IsHeapSymbol(p) {
			return nil, Arity{}, NewConditionError(ClassParse, paramsForm, "malformed parameter list")
		}
		name := h.SymbolName(p)
		if seen[name] {
			return nil, Arity{}, NewConditionError(ClassParse, paramsForm, "duplicate parameter name: "+name)
		}
		seen[name] = true
		names = append(names, name)
		required++
	}
	return names, Arity{Required: required, HasRest: hasRest}, nil
}

func (cs *compileState) compileDefsym(args Value) (Value, error) {
	h := cs.env.Heap
	items := h.ListToSlice(args)
	if len(items) != 2 || !IsHeapSymbol(items[0]) {
		return NIL, NewConditionError(ClassParse, args, "defsym wants (:defsym name value)")
	}
	val, err := cs.compile(items[1])
	if err != nil {
		return NIL, err
	}
	return h.SliceToList([]Value{kwDefsym, items[0], val}), nil
}

// compileLetq introduces a new local slot in the innermost scope,
// assigning it the next Argv index, per spec.md §4.5's lexical
// frame-relative addressing.
func (cs *compileState) compileLetq(args Value) (Value, error) {
	h := cs.env.Heap
	items := h.ListToSlice(args)
	if len(items) != 2 || !IsHeapSymbol(items[0]) {
		return NIL, NewConditionError(ClassParse, args, "letq wants (:letq name value)")
	}
	val, err := cs.compile(items[1])
	if err != nil {
		return NIL, err
	}
	name := h.SymbolName(items[0])
	if len(cs.scopes) == 0 {
		return NIL, NewConditionError(ClassParse, args, "letq used outside any lambda/macro body")
	}
	scope := cs.scopes[len(cs.scopes)-1]
	scope.names = append(scope.names, name)
	index := len(scope.names) - 1
	return h.SliceToList([]Value{kwSetLocal, MakeFixnum(int64(index)), val}), nil
}

// applyMacro expands a compile-time macro call: unevaluated argument
// forms go in, a replacement form comes out, per spec.md §4.5's macro
// expansion step.
func (env *Environment) applyMacro(macroVal Value, rawArgs []Value) (Value, error) {
	fn := env.Heap.MacroFunction(macroVal)
	return env.Apply(fn, rawArgs)
}

