package objstore_test

import (
    "fmt"

    "taskbind/pkg/objstore"
)

func Example_basic() {
    s := objstore.New(objstore.Options{IDPrefix: "arr-"})

    id, _ := s.Put([]byte("[1,2,3]"))
    fmt.Println(id[:4])

    v, _ := s.Get(id)
    fmt.Println(string(v))

    // zero-copy read
    vnc, _ := s.GetNoCopy(id)
    fmt.Println(len(vnc))

    v2, _ := s.GetDel(id)
    fmt.Println(string(v2), s.Len())

    m := s.Metrics()
    fmt.Println(m.Sets, m.Dels)

    // Output:
    // arr-
    // [1,2,3]
    // 7
    // [1,2,3] 0
    // 1 1
}
