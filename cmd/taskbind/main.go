// Command taskbind inspects the parameter descriptor table and encodes,
// frames and decodes task invocations.
package main

import (
    "fmt"
    "os"
)

func main() {
    if err := newRootCmd().Execute(); err != nil {
        fmt.Fprintln(os.Stderr, "Error:", err)
        os.Exit(1)
    }
}
