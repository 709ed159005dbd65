package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// keyNamespace prefixes every cache key. It must never overlap the storage
// layer's namespaces so that ClearNamespace cannot touch stored transcripts.
const keyNamespace = "ytapi:cache:"

// Key derives a deterministic cache key from an operation prefix and the
// call's arguments. Positional arguments keep their order; keyword arguments
// are sorted by name before hashing, so semantically identical calls map to
// the same key regardless of how the keyword map was built.
func Key(prefix string, args []any, kwargs map[string]any) string {
	parts := make([]string, 0, len(args)+len(kwargs))
	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}

	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+fmt.Sprint(kwargs[name]))
	}

	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return keyNamespace + prefix + ":" + hex.EncodeToString(sum[:])
}
