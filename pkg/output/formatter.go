// Package output renders command results as aligned tables, JSON or YAML.
package output

import (
    "bytes"
    "encoding/json"
    "fmt"
    "reflect"
    "strings"
    "text/tabwriter"

    "gopkg.in/yaml.v3"
)

// Formatter renders a command result.
type Formatter interface {
    Format(data any) string
}

// NewFormatter returns a Formatter for format: "table" (default), "json" or "yaml".
func NewFormatter(format string) Formatter {
    switch strings.ToLower(format) {
    case "json":
        return JSONFormatter{}
    case "yaml":
        return YAMLFormatter{}
    default:
        return TableFormatter{}
    }
}

// TableFormatter lays out slices of structs as columns and single structs
// as key: value lines. Column headers come from the json tag when present.
type TableFormatter struct{}

func (TableFormatter) Format(data any) string {
    var buf bytes.Buffer
    w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

    v := reflect.Indirect(reflect.ValueOf(data))
    switch v.Kind() {
    case reflect.Slice:
        if v.Len() == 0 { return "(none)\n" }
        if elem := reflect.Indirect(v.Index(0)); elem.Kind() == reflect.Struct {
            t := elem.Type()
            headers := make([]string, t.NumField())
            for i := range headers { headers[i] = strings.ToUpper(columnName(t.Field(i))) }
            fmt.Fprintln(w, strings.Join(headers, "\t"))
            for i := 0; i < v.Len(); i++ {
                row := reflect.Indirect(v.Index(i))
                vals := make([]string, row.NumField())
                for j := range vals { vals[j] = fmt.Sprint(row.Field(j).Interface()) }
                fmt.Fprintln(w, strings.Join(vals, "\t"))
            }
            break
        }
        for i := 0; i < v.Len(); i++ { fmt.Fprintln(w, v.Index(i).Interface()) }
    case reflect.Struct:
        t := v.Type()
        for i := 0; i < t.NumField(); i++ {
            fmt.Fprintf(w, "%s:\t%v\n", columnName(t.Field(i)), v.Field(i).Interface())
        }
    default:
        fmt.Fprintln(w, data)
    }

    w.Flush()
    return buf.String()
}

func columnName(f reflect.StructField) string {
    if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" { return tag }
    return f.Name
}

// JSONFormatter formats data as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Format(data any) string {
    b, err := json.MarshalIndent(data, "", "  ")
    if err != nil { return fmt.Sprintf("error formatting JSON: %v\n", err) }
    return string(b) + "\n"
}

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

func (YAMLFormatter) Format(data any) string {
    b, err := yaml.Marshal(data)
    if err != nil { return fmt.Sprintf("error formatting YAML: %v\n", err) }
    return string(b)
}
