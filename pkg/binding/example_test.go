package binding_test

import (
    "fmt"

    "taskbind/pkg/binding"
    "taskbind/pkg/param"
)

func ExampleMarshaller_Marshal() {
    inv, err := binding.NewBuilder("greet", nil).
        Add("who", param.In(param.TypeString), "ana").
        Add("times", param.In(param.TypeInt), int32(2)).
        Returns(param.TypeVoid).
        Build()
    if err != nil {
        fmt.Println(err)
        return
    }
    args, err := binding.NewMarshaller(nil, nil).Marshal(inv)
    if err != nil {
        fmt.Println(err)
        return
    }
    fmt.Println(args[:2])
    fmt.Println(args[2:9])
    fmt.Println(args[9:16])
    fmt.Println(args[16:])

    // Output:
    // [greet 3]
    // [8 0 3 null who null I2FuYQ==]
    // [4 0 3 null times null 2]
    // [17 3 3 null $return null null]
}
