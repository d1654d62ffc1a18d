package cerrors

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DiagnosticsJSON renders errs as a JSON array of {kind, message, line,
// column, file} objects, for tooling that wants to consume diagnostics
// without parsing the human-readable caret format (spec.md §2: the
// instruction stream, and by extension its diagnostics, are "consumed by
// an external VM" or IDE). Built incrementally with sjson.Set rather than
// fmt.Sprintf-ing a JSON string by hand.
func DiagnosticsJSON(errs []*CompilerError) (string, error) {
	doc := "[]"
	var err error
	for i, e := range errs {
		base := strconv.Itoa(i)
		doc, err = sjson.Set(doc, base+".kind", string(e.Kind))
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".message", e.Message)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".line", e.Pos.Line)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".column", e.Pos.Column)
		if err != nil {
			return "", err
		}
		if e.File != "" {
			doc, err = sjson.Set(doc, base+".file", e.File)
			if err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}

// DiagnosticCount uses gjson to answer "how many diagnostics are in this
// JSON blob" without unmarshaling into a Go struct, matching the
// read-side-gjson/write-side-sjson split used elsewhere in the pack.
func DiagnosticCount(diagnosticsJSON string) int {
	return len(gjson.Parse(diagnosticsJSON).Array())
}

// KindsOf extracts just the "kind" field of every diagnostic via a gjson
// path query.
func KindsOf(diagnosticsJSON string) []string {
	result := gjson.Get(diagnosticsJSON, "#.kind")
	var kinds []string
	for _, r := range result.Array() {
		kinds = append(kinds, r.String())
	}
	return kinds
}
