package orchestrator

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

// decodeInto converts an effective configuration map into one of the typed
// per-type configuration structs, stashing any key the struct doesn't
// declare a json tag for into its Unknown field rather than discarding it.
func decodeInto[T any](effective map[string]any) (T, error) {
	var out T

	raw, err := json.Marshal(effective)
	if err != nil {
		return out, errs.Wrap(errs.RenderError, err, "error encoding effective configuration")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errs.Wrap(errs.RenderError, err, "error decoding effective configuration")
	}

	known := map[string]bool{}
	t := reflect.TypeOf(out)
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if tag != "" && tag != "-" {
			known[tag] = true
		}
	}

	unknown := map[string]any{}
	for k, v := range effective {
		if !known[k] {
			unknown[k] = v
		}
	}

	reflect.ValueOf(&out).Elem().FieldByName("Unknown").Set(reflect.ValueOf(unknown))

	return out, nil
}
