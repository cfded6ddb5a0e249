package handlers

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
)

// etagOf hashes the JSON form of v into a strong entity tag.
func etagOf(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return fmt.Sprintf(`"%016x"`, h.Sum64()), nil
}

// etagMatches implements the If-None-Match comparison (weak, list-aware).
func etagMatches(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
