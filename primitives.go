package mu

import "strconv"

// primitiveFrameID is the shared frame_id every primitive Function
// cell carries. Primitives never recurse through frame-ref/letq, so
// they have no need of a distinct identity the frame cache must track.
const primitiveFrameID = -1

// defPrimitive registers fn under name in env.CoreNamespace, wiring it
// into env.primitives the way the teacher's grammar package wires a
// named transformation into its pipeline table: an index, not a
// closure captured ad hoc at every call site.
func (env *Environment) defPrimitive(name string, arity Arity, fn primitiveFunc) {
	index := len(env.primitives)
	env.primitives = append(env.primitives, fn)
	env.primitiveNames = append(env.primitiveNames, name)
	nameVal := env.Heap.MakeString(name)
	primFn := env.Heap.NewPrimitive(nameVal, index, arity, primitiveFrameID)
	sym := Intern(env.Heap, env.CoreNamespace, name)
	env.Heap.SetSymbolValue(sym, primFn)
}

// registerPrimitives installs the fixed primitive set of spec.md §4.6
// plus SPEC_FULL.md §C's supplemented list/struct/stream/system
// primitives. Grouped the way the teacher groups its grammar-node
// visitor methods: one file per concern.
func registerPrimitives(env *Environment) {
	registerArithPrimitives(env)
	registerListPrimitives(env)
	registerStringPrimitives(env)
	registerVectorPrimitives(env)
	registerSymbolPrimitives(env)
	registerControlPrimitives(env)
	registerStreamPrimitives(env)
	registerStructPrimitives(env)
	registerSystemPrimitives(env)
	registerPredicatePrimitives(env)
}

func requireArgCount(name string, argv []Value, n int) error {
	if len(argv) != n {
		return NewConditionError(ClassControl, NIL, name+": expected "+strconv.Itoa(n)+" arguments")
	}
	return nil
}
