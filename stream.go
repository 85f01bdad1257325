package mu

import (
	"bufio"
	"io"
	"os"
)

// streamBackend is the Go-level byte source/sink behind a heap Stream
// cell (types_stream.go). All byte I/O in the runtime goes through
// this interface; the reader, the printer and the stream primitives
// reach it through the Environment's byte methods, per spec.md §4.7.
type streamBackend interface {
	readByte() (b byte, eof bool, err error)
	unreadByte() error
	writeByte(b byte) error
	close() error
}

// stringStreamBackend is an in-memory buffer, readable, writable, or
// both, per spec.md §4.7 and SPEC_FULL.md §C.
type stringStreamBackend struct {
	buf []byte
	pos int
	out *[]byte // non-nil when this stream is writable
}

func (s *stringStreamBackend) readByte() (byte, bool, error) {
	if s.pos >= len(s.buf) {
		return 0, true, nil
	}
	b := s.buf[s.pos]
	s.pos++
	return b, false, nil
}

func (s *stringStreamBackend) unreadByte() error {
	if s.pos > 0 {
		s.pos--
	}
	return nil
}

func (s *stringStreamBackend) writeByte(b byte) error {
	if s.out == nil {
		return &Condition{Class: ClassStream, Reason: "stream is not writable"}
	}
	*s.out = append(*s.out, b)
	return nil
}

func (s *stringStreamBackend) close() error { return nil }

// fileStreamBackend wraps a *os.File (also used for the three
// standard process streams), buffered the way the teacher's
// cmd/main.go treats os.Stdin/Stdout via bufio.
type fileStreamBackend struct {
	f       *os.File
	r       *bufio.Reader
	w       *bufio.Writer
	lastPos int64
	canSeek bool
}

func newFileStreamBackend(f *os.File, readable, writable bool) *fileStreamBackend {
	b := &fileStreamBackend{f: f}
	if readable {
		b.r = bufio.NewReader(f)
	}
	if writable {
		b.w = bufio.NewWriter(f)
	}
	if _, err := f.Seek(0, io.SeekCurrent); err == nil {
		b.canSeek = true
	}
	return b
}

func (b *fileStreamBackend) readByte() (byte, bool, error) {
	if b.r == nil {
		return 0, false, &Condition{Class: ClassStream, Reason: "stream is not readable"}
	}
	c, err := b.r.ReadByte()
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return c, false, nil
}

func (b *fileStreamBackend) unreadByte() error {
	if b.r == nil {
		return nil
	}
	return b.r.UnreadByte()
}

func (b *fileStreamBackend) writeByte(c byte) error {
	if b.w == nil {
		return &Condition{Class: ClassStream, Reason: "stream is not writable"}
	}
	return b.w.WriteByte(c)
}

func (b *fileStreamBackend) close() error {
	if b.w != nil {
		_ = b.w.Flush()
	}
	if b.f == os.Stdin || b.f == os.Stdout || b.f == os.Stderr {
		return nil
	}
	return b.f.Close()
}

func (b *fileStreamBackend) flush() {
	if b.w != nil {
		_ = b.w.Flush()
	}
}

// streamEntry is the Environment's side-table row backing a heap
// Stream cell's handle (types_stream.go).
type streamEntry struct {
	backend streamBackend
	closed  bool
}

// newStreamHandle registers backend and returns its handle index.
func (env *Environment) newStreamHandle(backend streamBackend) int {
	env.streams = append(env.streams, &streamEntry{backend: backend})
	return len(env.streams) - 1
}

func (env *Environment) streamEntryFor(v Value) (*streamEntry, error) {
	handle, ok := env.Heap.StreamHandle(v)
	if !ok {
		return nil, NewConditionError(ClassStream, v, "stream has no platform handle")
	}
	if handle < 0 || handle >= len(env.streams) {
		return nil, NewConditionError(ClassStream, v, "invalid stream handle")
	}
	return env.streams[handle], nil
}

// ReadByte returns the next byte on stream, or NIL at end-of-stream
// (spec.md §4.7). Function streams invoke their backing function and
// expect it to return a fixnum byte.
func (env *Environment) ReadByte(stream Value) (Value, error) {
	if fn := env.Heap.StreamFunction(stream); !Null(fn) {
		return env.Apply(fn, nil)
	}
	entry, err := env.streamEntryFor(stream)
	if err != nil {
		return NIL, err
	}
	if entry.closed {
		return NIL, nil
	}
	b, eof, err := entry.backend.readByte()
	if err != nil {
		return NIL, NewConditionError(ClassStream, stream, err.Error())
	}
	if eof {
		return NIL, nil
	}
	return MakeFixnum(int64(b)), nil
}

// UnreadByte pushes the last-read byte back onto stream.
func (env *Environment) UnreadByte(stream Value) error {
	entry, err := env.streamEntryFor(stream)
	if err != nil {
		return err
	}
	return entry.backend.unreadByte()
}

// WriteByte writes a single byte to stream.
func (env *Environment) WriteByte(stream Value, b byte) error {
	entry, err := env.streamEntryFor(stream)
	if err != nil {
		return err
	}
	if entry.closed {
		return nil
	}
	if err := entry.backend.writeByte(b); err != nil {
		return NewConditionError(ClassStream, stream, err.Error())
	}
	return nil
}

// WriteString is a convenience wrapper over WriteByte used by the
// printer.
func (env *Environment) WriteString(stream Value, s string) error {
	for i := 0; i < len(s); i++ {
		if err := env.WriteByte(stream, s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close marks stream closed; reads return end-of-stream, writes are
// ignored thereafter (spec.md §5's scoped-acquisition policy).
func (env *Environment) Close(stream Value) error {
	entry, err := env.streamEntryFor(stream)
	if err != nil {
		return err
	}
	if entry.closed {
		return nil
	}
	entry.closed = true
	return entry.backend.close()
}

// OpenInputString creates a readable in-memory stream over s.
func (env *Environment) OpenInputString(s string) Value {
	handle := env.newStreamHandle(&stringStreamBackend{buf: []byte(s)})
	return env.Heap.NewStream(handle)
}

// OpenOutputString creates a writable in-memory stream; its contents
// can be retrieved at any time through the returned buffer or the
// get-output-string primitive.
func (env *Environment) OpenOutputString() (Value, *[]byte) {
	out := &[]byte{}
	handle := env.newStreamHandle(&stringStreamBackend{out: out})
	return env.Heap.NewStream(handle), out
}

// OpenInputFile opens path for reading.
func (env *Environment) OpenInputFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return NIL, NewConditionError(ClassFile, NIL, err.Error())
	}
	handle := env.newStreamHandle(newFileStreamBackend(f, true, false))
	return env.Heap.NewStream(handle), nil
}

// OpenOutputFile creates/truncates path for writing.
func (env *Environment) OpenOutputFile(path string) (Value, error) {
	f, err := os.Create(path)
	if err != nil {
		return NIL, NewConditionError(ClassFile, NIL, err.Error())
	}
	handle := env.newStreamHandle(newFileStreamBackend(f, false, true))
	return env.Heap.NewStream(handle), nil
}

// flushAll flushes every buffered file-backed stream, used before the
// process exits.
func (env *Environment) flushAll() {
	for _, entry := range env.streams {
		if fb, ok := entry.backend.(*fileStreamBackend); ok {
			fb.flush()
		}
	}
}
