package param

import "fmt"

// Stream names the standard stream a file parameter is redirected to.
type Stream uint8

const (
    StdIn             Stream = 0
    StdOut            Stream = 1
    StdErr            Stream = 2
    StreamUnspecified Stream = 3
)

const NumStreams = int(StreamUnspecified) + 1

var streamNames = [NumStreams]string{
    StdIn:             "stdin",
    StdOut:            "stdout",
    StdErr:            "stderr",
    StreamUnspecified: "unspecified",
}

func (s Stream) Valid() bool { return int(s) < NumStreams }

// Redirected reports whether s binds one of the three standard streams.
func (s Stream) Redirected() bool { return s == StdIn || s == StdOut || s == StdErr }

func (s Stream) String() string {
    if !s.Valid() { return fmt.Sprintf("stream(%d)", uint8(s)) }
    return streamNames[s]
}

func Streams() []Stream {
    out := make([]Stream, NumStreams)
    for i := range out { out[i] = Stream(i) }
    return out
}

func ParseStream(name string) (Stream, error) {
    for i, n := range streamNames {
        if n == name { return Stream(i), nil }
    }
    return StreamUnspecified, invalidStreamf("unknown stream name %q", name)
}

func StreamFromOrdinal(o int) (Stream, error) {
    if o < 0 || o >= NumStreams {
        return StreamUnspecified, invalidStreamf("stream ordinal %d out of range [0,%d)", o, NumStreams)
    }
    return Stream(o), nil
}

// DefaultStream is the stream of every parameter not taking part in
// redirection.
func DefaultStream() Stream { return StreamUnspecified }
