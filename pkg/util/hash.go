package util

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// HashRecord derives a stable token from an arbitrary decoded JSON record.
// The map is flattened with sorted keys so repeated fetches of the same
// underlying record always hash to the same value.
func HashRecord(raw map[string]any) string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	builder := strings.Builder{}
	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(encodeValue(raw[k]))
		builder.WriteString("|")
	}
	return hashString(builder.String())
}

func encodeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		// Nested structures fall back to their JSON encoding, which is
		// deterministic for map keys in encoding/json.
		buf, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(buf)
	}
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
