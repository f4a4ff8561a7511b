package ports

// LogSink accepts ordered text lines produced by a build. The core only
// produces lines; retention and eviction are the sink's concern.
//
//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type LogSink interface {
	Emit(line string)
}

// EmitFunc adapts a function to the LogSink interface.
type EmitFunc func(line string)

// Emit calls f(line).
func (f EmitFunc) Emit(line string) { f(line) }
