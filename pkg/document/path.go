package document

import (
	"strconv"
	"strings"
)

// Path returns a jq-style path from the root to id, like
// .store.book[2].title. The root alone is ".". Keys that are not plain
// identifiers use bracket syntax: .["key with spaces"].
func (d *Document) Path(id NodeID) string {
	if id == d.root {
		return "."
	}
	var segs []string
	for cur := id; cur != d.root; cur = d.nodes[cur].Parent {
		n := &d.nodes[cur]
		if n.HasKey {
			if IsIdentKey(n.Key) {
				segs = append(segs, "."+n.Key)
			} else {
				segs = append(segs, `.["`+escapeKey(n.Key)+`"]`)
			}
		} else {
			segs = append(segs, "["+strconv.Itoa(int(n.Index))+"]")
		}
	}
	var sb strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		sb.WriteString(segs[i])
	}
	return sb.String()
}

// IsIdentKey reports whether key reads as a plain identifier: ASCII
// letters, digits and underscore, not starting with a digit. Such keys
// display without quotes and path segments use them after a bare dot.
func IsIdentKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func escapeKey(key string) string {
	key = strings.ReplaceAll(key, `\`, `\\`)
	return strings.ReplaceAll(key, `"`, `\"`)
}
