package mu

// Eval evaluates one already-compiled form (Environment.Compile's
// output) against the currently active frame, if any, per spec.md
// §4.6's eval/apply cycle.
func (env *Environment) Eval(form Value) (Value, error) {
	h := env.Heap
	switch {
	case Null(form), form == T, IsFixnum(form), IsFloat(form), IsChar(form),
		IsKeyword(form), IsImmediateString(form):
		return form, nil
	case h.IsString(form):
		return form, nil
	case IsHeapSymbol(form):
		return env.evalSymbol(form)
	case IsPair(form):
		return env.evalPair(form)
	default:
		return form, nil
	}
}

func (env *Environment) evalSymbol(sym Value) (Value, error) {
	h := env.Heap
	if !h.IsBound(sym) {
		return NIL, NewConditionError(ClassUnsym, sym, "unbound symbol: "+h.SymbolName(sym))
	}
	return h.SymbolValue(sym), nil
}

func (env *Environment) evalPair(form Value) (Value, error) {
	h := env.Heap
	car := h.Car(form)
	switch car {
	case kwFrameRef:
		return env.evalFrameRef(form)
	case kwSetLocal:
		return env.evalSetLocal(form)
	case kwQuote:
		return h.Car(h.Cdr(form)), nil
	case kwLambda:
		return env.evalLambdaForm(form, false)
	case kwMacro:
		return env.evalLambdaForm(form, true)
	case kwDefsym:
		return env.evalDefsym(form)
	}
	return env.evalCall(form)
}

func (env *Environment) evalFrameRef(form Value) (Value, error) {
	h := env.Heap
	items := h.ListToSlice(h.Cdr(form))
	depth := int(FixnumValue(items[0]))
	index := int(FixnumValue(items[1]))
	frame, err := env.resolveFrame(depth)
	if err != nil {
		return NIL, err
	}
	if index < 0 || index >= len(frame.Argv) {
		return NIL, NewConditionError(ClassRange, form, "frame-ref index out of range")
	}
	return frame.Argv[index], nil
}

func (env *Environment) evalSetLocal(form Value) (Value, error) {
	h := env.Heap
	items := h.ListToSlice(h.Cdr(form))
	index := int(FixnumValue(items[0]))
	val, err := env.Eval(items[1])
	if err != nil {
		return NIL, err
	}
	if env.frames.len() == 0 {
		return NIL, NewConditionError(ClassControl, form, "set-local used outside any active frame")
	}
	frame := env.frames.top()
	for len(frame.Argv) <= index {
		frame.Argv = append(frame.Argv, NIL)
	}
	frame.Argv[index] = val
	return val, nil
}

// resolveFrame walks the currently executing frame's lexical chain to
// depth (0 == the current frame itself), looking up the target
// frame_id's most recent live activation in the frame cache, per
// spec.md §4.6's frame-ref resolution.
func (env *Environment) resolveFrame(depth int) (*Frame, error) {
	if env.frames.len() == 0 {
		return nil, NewConditionError(ClassControl, NIL, "frame-ref used outside any active frame")
	}
	current := env.frames.top()
	chain := append(append([]int64{}, current.Context...), current.FrameID)
	idx := len(chain) - 1 - depth
	if idx < 0 || idx >= len(chain) {
		return nil, NewConditionError(ClassControl, NIL, "frame-ref depth out of range")
	}
	target := env.frameCache.top(chain[idx])
	if target == nil {
		return nil, NewConditionError(ClassControl, NIL, "referenced frame is no longer active")
	}
	return target, nil
}

// evalLambdaForm materializes a compiled (:lambda ...)/(:macro ...)
// literal into a live Function (wrapped in a Macro cell for the
// latter), capturing the enclosing lexical chain at the moment of
// evaluation, per spec.md §4.5/§4.6.
func (env *Environment) evalLambdaForm(form Value, isMacro bool) (Value, error) {
	h := env.Heap
	items := h.ListToSlice(h.Cdr(form))
	frameID := FixnumValue(items[0])
	arity := decodeArity(FixnumValue(items[1]))
	bodySource := h.SliceToList(items[2:])

	var chainValues []Value
	if env.frames.len() > 0 {
		cur := env.frames.top()
		for _, id := range cur.Context {
			chainValues = append(chainValues, MakeFixnum(id))
		}
		chainValues = append(chainValues, MakeFixnum(cur.FrameID))
	}
	captured := h.SliceToList(chainValues)

	fn := h.NewFunction(NIL, bodySource, captured, frameID, arity)
	if isMacro {
		return h.NewMacro(fn), nil
	}
	return fn, nil
}

func (env *Environment) evalDefsym(form Value) (Value, error) {
	h := env.Heap
	items := h.ListToSlice(h.Cdr(form))
	sym := items[0]
	val, err := env.Eval(items[1])
	if err != nil {
		return NIL, err
	}
	h.SetSymbolValue(sym, val)
	return val, nil
}

func (env *Environment) evalCall(form Value) (Value, error) {
	h := env.Heap
	car := h.Car(form)
	fn, err := env.Eval(car)
	if err != nil {
		return NIL, err
	}
	argForms := h.ListToSlice(h.Cdr(form))
	argv := make([]Value, len(argForms))
	for i, af := range argForms {
		v, err := env.Eval(af)
		if err != nil {
			return NIL, err
		}
		argv[i] = v
	}
	return env.Apply(fn, argv)
}

func decodeContextChain(h *Heap, list Value) []int64 {
	items := h.ListToSlice(list)
	chain := make([]int64, len(items))
	for i, it := range items {
		chain[i] = FixnumValue(it)
	}
	return chain
}

// Apply calls fn (a primitive, user function, or macro-wrapped
// function) with already-evaluated argv, per spec.md §4.6 steps 1-7:
// arity check, frame construction, frame-stack/frame-cache push, body
// evaluation, then pop on the way out (including the error path, so a
// non-local exit still leaves both stacks balanced).
func (env *Environment) Apply(fn Value, argv []Value) (Value, error) {
	h := env.Heap
	if h.IsMacro(fn) {
		fn = h.MacroFunction(fn)
	}
	if !IsFunction(fn) {
		return NIL, NewConditionError(ClassType, fn, "attempt to call a non-function value")
	}
	if idx, ok := h.PrimitiveIndex(fn); ok {
		return env.primitives[idx](env, argv)
	}

	arity := h.FunctionArity(fn)
	if len(argv) < arity.Required || (!arity.HasRest && len(argv) > arity.Required) {
		return NIL, NewConditionError(ClassControl, fn, "wrong number of arguments")
	}
	var slots []Value
	if arity.HasRest {
		slots = make([]Value, arity.Required+1)
		copy(slots, argv[:arity.Required])
		slots[arity.Required] = h.SliceToList(argv[arity.Required:])
	} else {
		slots = append([]Value{}, argv...)
	}

	frameID := h.FunctionFrameID(fn)
	frame := &Frame{
		FrameID: frameID,
		Callee:  fn,
		Argv:    slots,
		Context: decodeContextChain(h, h.FunctionCaptured(fn)),
	}
	env.frames.push(frame)
	env.frameCache.push(frame)
	defer func() {
		env.frames.pop()
		env.frameCache.pop(frameID)
	}()

	body := h.ListToSlice(h.FunctionSource(fn))
	result := Value(NIL)
	for _, bf := range body {
		v, err := env.Eval(bf)
		if err != nil {
			return NIL, err
		}
		result = v
		frame.ReturnValue = v
	}
	return result, nil
}
