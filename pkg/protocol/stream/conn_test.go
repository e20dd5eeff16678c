package stream

import (
    "errors"
    "io"
    "net"
    "sync"
    "testing"

    "taskbind/pkg/protocol"
)

func TestConnSendRecv(t *testing.T) {
    a, b := net.Pipe()
    defer b.Close()
    src, dst := NewNetConn(a), NewNetConn(b)

    const senders, perSender = 4, 8
    var wg sync.WaitGroup
    for s := 0; s < senders; s++ {
        wg.Add(1)
        go func(s int) {
            defer wg.Done()
            for i := 0; i < perSender; i++ {
                e := protocol.Envelope{Header: protocol.NewHeader(protocol.FormatJSON, 0), Payload: []byte{byte(s), byte(i)}}
                if err := src.Send(&e); err != nil { t.Errorf("send: %v", err); return }
            }
        }(s)
    }
    go func() { wg.Wait(); a.Close() }()

    seen := make(map[[2]byte]bool)
    for {
        var e protocol.Envelope
        err := dst.Recv(&e)
        if errors.Is(err, io.EOF) { break }
        if err != nil { t.Fatalf("recv: %v", err) }
        if len(e.Payload) != 2 { t.Fatalf("payload %v", e.Payload) }
        seen[[2]byte{e.Payload[0], e.Payload[1]}] = true
    }
    if len(seen) != senders*perSender { t.Fatalf("received %d distinct frames", len(seen)) }
}
