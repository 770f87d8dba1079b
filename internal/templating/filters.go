/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package templating

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/redhat-cop/poolboy/internal/lifespan"
	"github.com/tidwall/gjson"
)

// raw-type filters, named in funcMapFor below: bool, int, float and
// object all coerce their input and are also the markers Render's
// pure-expression detector looks for at the end of a pipeline to decide
// whether the result should be decoded to a native type instead of
// stringified.
var rawTypeFilters = map[string]bool{
	"bool": true, "int": true, "float": true, "object": true,
}

func funcMapFor() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["bool"] = filterBool
	fm["int"] = filterInt
	fm["float"] = filterFloat
	fm["object"] = filterObject
	fm["json_query"] = filterJSONQuery
	fm["merge_list_of_dicts"] = filterMergeListOfDicts
	fm["parse_time_interval"] = filterParseTimeInterval
	fm["strgen"] = filterStrgen
	fm["to_datetime"] = filterToDatetime
	fm["to_json"] = filterToJSON
	return fm
}

func filterBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, fmt.Errorf("filter bool: %w", err)
		}
		return b, nil
	case int, int64, float64:
		return fmt.Sprint(t) != "0", nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("filter bool: unsupported type %T", v)
	}
}

func filterInt(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("filter int: %w", err)
		}
		return n, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("filter int: unsupported type %T", v)
	}
}

func filterFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("filter float: %w", err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("filter float: unsupported type %T", v)
	}
}

// filterObject is identity: it exists purely as the marker that tells
// Render to decode the surrounding pure expression to its native type
// (map or slice) rather than stringifying it. A literal map/slice
// produced by a template expression is already the right shape.
func filterObject(v interface{}) interface{} {
	return v
}

// filterJSONQuery evaluates a gjson path expression against a value,
// round-tripping through JSON since gjson operates on encoded documents.
func filterJSONQuery(v interface{}, path string) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json_query: encoding operand: %w", err)
	}
	result := gjson.GetBytes(raw, path)
	if !result.Exists() {
		return nil, nil
	}
	return result.Value(), nil
}

// filterMergeListOfDicts deep-merges a list of maps left-to-right, later
// entries overriding earlier ones, into a single map.
func filterMergeListOfDicts(list []interface{}) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("merge_list_of_dicts: element is not an object: %T", item)
		}
		for k, v := range m {
			out[k] = v
		}
	}
	return out, nil
}

// filterParseTimeInterval parses Poolboy's duration-string grammar into
// a Go time.Duration, exposed to templates so a duration string can be
// piped into it, as in `"1h30m" | parse_time_interval`.
func filterParseTimeInterval(s string) (time.Duration, error) {
	return lifespan.ParseDuration(s)
}

const strgenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// filterStrgen generates a random string of the given length from an
// alphanumeric alphabet, the Go equivalent of the original's
// pattern-based StringGenerator used for generated secrets/suffixes.
func filterStrgen(length int) (string, error) {
	if length <= 0 {
		length = 16
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(strgenAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("strgen: %w", err)
		}
		out[i] = strgenAlphabet[n.Int64()]
	}
	return string(out), nil
}

func filterToDatetime(s string, layout ...string) (time.Time, error) {
	f := time.RFC3339
	if len(layout) > 0 && layout[0] != "" {
		f = layout[0]
	}
	t, err := time.Parse(f, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("to_datetime: %w", err)
	}
	return t, nil
}

func filterToJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("to_json: %w", err)
	}
	return string(raw), nil
}
