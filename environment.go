package mu

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// primitiveFunc is a Go-native function backing a Function heap cell
// whose primitive_descriptor_or_nil field holds its index into
// Environment.primitives (spec.md §3.2's Function class, §4.6 step 3).
type primitiveFunc func(env *Environment, args []Value) (Value, error)

// Environment is the embeddable runtime instance: one heap, one
// reader/printer configuration, one namespace table, one frame stack.
// Nothing here is safe for concurrent use from multiple goroutines at
// once, per spec.md §5 -- callers serialize their own access.
type Environment struct {
	Heap      *Heap
	Config    *Config
	Readtable *Readtable

	Namespaces       map[string]Value
	CurrentNamespace Value
	CoreNamespace    Value

	streams []*streamEntry
	Stdin   Value
	Stdout  Value
	Stderr  Value

	frames      frameStack
	frameCache  frameCache
	nextFrameID int64

	primitives     []primitiveFunc
	primitiveNames []string
}

// NewEnvironment builds a runtime with its heap, core namespace,
// standard streams, readtable, and primitive registry all wired up
// and ready to read/compile/eval forms, per spec.md §6.1's env_new.
func NewEnvironment(cfg *Config) (*Environment, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	h, err := NewHeap(cfg.GetInt("heap.size"))
	if err != nil {
		return nil, err
	}
	env := &Environment{
		Heap:       h,
		Config:     cfg,
		Readtable:  NewDefaultReadtable(),
		Namespaces: make(map[string]Value),
		frameCache: newFrameCache(),
	}
	env.CoreNamespace = h.NewNamespace("core")
	env.Namespaces["core"] = env.CoreNamespace
	env.CurrentNamespace = env.CoreNamespace

	env.Stdin = env.wrapStdStream(os.Stdin, true, false)
	env.Stdout = env.wrapStdStream(os.Stdout, false, true)
	env.Stderr = env.wrapStdStream(os.Stderr, false, true)

	registerPrimitives(env)
	return env, nil
}

func (env *Environment) wrapStdStream(f *os.File, readable, writable bool) Value {
	handle := env.newStreamHandle(newFileStreamBackend(f, readable, writable))
	return env.Heap.NewStream(handle)
}

// Close releases the heap's backing mmap and flushes buffered
// streams. Callers should defer this immediately after NewEnvironment
// succeeds.
func (env *Environment) Close() error {
	env.flushAll()
	return env.Heap.Close()
}

// FindNamespace looks up (or, for the empty string, returns the
// current namespace) a namespace by name, used by the reader's
// `ns:name` syntax and the `in-namespace` primitive.
func (env *Environment) FindNamespace(name string) (Value, error) {
	if name == "" {
		return env.CurrentNamespace, nil
	}
	if ns, ok := env.Namespaces[name]; ok {
		return ns, nil
	}
	return NIL, NewConditionError(ClassUnsym, NIL, "no such namespace: "+name)
}

// EnsureNamespace returns the named namespace, creating it if absent.
func (env *Environment) EnsureNamespace(name string) Value {
	if ns, ok := env.Namespaces[name]; ok {
		return ns
	}
	ns := env.Heap.NewNamespace(name)
	env.Namespaces[name] = ns
	return ns
}

// Roots returns the GC root set: the frame stack's live bindings, the
// namespace table, and the standard streams, per spec.md §3.3's
// "root set" lifecycle stage.
func (env *Environment) Roots() []Value {
	roots := []Value{env.CurrentNamespace, env.CoreNamespace, env.Stdin, env.Stdout, env.Stderr}
	for _, ns := range env.Namespaces {
		roots = append(roots, ns)
	}
	for _, f := range env.frames {
		roots = append(roots, f.Callee, f.ReturnValue)
		roots = append(roots, f.Argv...)
	}
	return roots
}

// GC forces an immediate mark-sweep collection and returns the number
// of bytes reclaimed, backing the `gc` primitive (SPEC_FULL.md §C).
func (env *Environment) GC() int {
	return env.Heap.Collect(env.Roots())
}

// ReadStream reads the next form from stream using env's readtable,
// returning NIL with a nil error at end-of-stream per spec.md §6.1's
// read_stream (callers distinguish EOF-as-NIL from a genuine NIL form
// the same way the reference embedding API does: by checking the
// stream's exhaustion separately if that distinction matters to them).
func (env *Environment) ReadStream(stream Value) (Value, error) {
	rd := NewReader(env, stream)
	v, err := rd.Read()
	if err == ErrEOF {
		return NIL, nil
	}
	return v, err
}

// ReadString reads the first form out of s.
func (env *Environment) ReadString(s string) (Value, error) {
	stream := env.OpenInputString(s)
	defer env.Close(stream)
	return env.ReadStream(stream)
}

// PrintToString renders v to a fresh Go string, per spec.md §6.1's
// print_to_string.
func (env *Environment) PrintToString(v Value, escape bool) string {
	stream, out := env.OpenOutputString()
	_ = env.Print(stream, v, escape)
	return string(*out)
}

// Print renders v to stream, per spec.md §4.3/§6.1's print.
func (env *Environment) Print(stream, v Value, escape bool) error {
	p := &Printer{env: env, escape: escape}
	return p.Print(stream, v)
}

// Terpri writes a newline to stream.
func (env *Environment) Terpri(stream Value) error {
	return env.WriteByte(stream, '\n')
}

// WithCondition runs body and, if it signals a condition whose class
// matches class (or class is ClassSimple, meaning "catch anything"),
// invokes handler with the boxed condition instead of propagating it
// further, per spec.md §6.1/§7's with-condition.
func (env *Environment) WithCondition(class ConditionClass, body func() (Value, error), handler func(Value) (Value, error)) (Value, error) {
	v, err := body()
	if err == nil {
		return v, nil
	}
	if uw, ok := asUnwind(err); ok && uw.Condition != nil {
		if class == ClassSimple || uw.Condition.Class == class {
			c := uw.Condition
			boxed := env.Heap.NewCondition(MakeKeyword(string(c.Class)), MakeFixnum(c.Frame), c.Source, c.Reason)
			return handler(boxed)
		}
	}
	if cond, ok := err.(*Condition); ok {
		if class == ClassSimple || cond.Class == class {
			boxed := env.Heap.NewCondition(MakeKeyword(string(cond.Class)), MakeFixnum(cond.Frame), cond.Source, cond.Reason)
			return handler(boxed)
		}
	}
	return NIL, err
}

// REPL runs the teacher's read-eval-print loop shape (clarete-langlang/go's
// cmd/main.go interactive mode), adapted to this runtime's read/compile
// /eval/print pipeline, looping over stdin until EOF.
func (env *Environment) REPL(in io.Reader, out io.Writer) error {
	br := bufio.NewReader(in)
	catch := env.Config.GetBool("repl.catch_conditions")
	for {
		fmt.Fprint(out, "mu> ")
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		lineStream := env.OpenInputString(line)
		form, rerr := env.ReadStream(lineStream)
		_ = env.Close(lineStream)
		if rerr != nil {
			fmt.Fprintln(out, rerr.Error())
			continue
		}
		if Null(form) && line == "" {
			continue
		}
		result, eerr := env.EvalForm(form)
		if eerr != nil {
			if catch {
				fmt.Fprintln(out, eerr.Error())
				continue
			}
			return eerr
		}
		fmt.Fprintln(out, env.PrintToString(result, true))
	}
}

// EvalForm compiles and evaluates one top-level form in the current
// namespace, per spec.md §6.1's eval.
func (env *Environment) EvalForm(form Value) (Value, error) {
	compiled, err := env.Compile(form)
	if err != nil {
		return NIL, err
	}
	return env.Eval(compiled)
}
