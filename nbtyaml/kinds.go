package nbtyaml

import (
	"strings"

	"github.com/arloliu/nbt/format"
)

const listTagPrefix = "!list/"

var kindNames = map[format.Kind]string{
	format.KindEnd:       "end",
	format.KindByte:      "byte",
	format.KindShort:     "short",
	format.KindInt:       "int",
	format.KindLong:      "long",
	format.KindFloat:     "float",
	format.KindDouble:    "double",
	format.KindByteArray: "bytes",
	format.KindString:    "string",
	format.KindList:      "list",
	format.KindCompound:  "compound",
	format.KindIntArray:  "ints",
	format.KindLongArray: "longs",
}

var kindsByName = func() map[string]format.Kind {
	m := make(map[string]format.Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}

	return m
}()

// yamlTag returns the local tag for a tag of the given kind. elem is only
// used for lists.
func yamlTag(kind, elem format.Kind) string {
	if kind == format.KindList {
		return listTagPrefix + kindNames[elem]
	}

	return "!" + kindNames[kind]
}

// parseTag is the inverse of yamlTag. ok is false for tags outside the set.
func parseTag(s string) (kind, elem format.Kind, ok bool) {
	if rest, found := strings.CutPrefix(s, listTagPrefix); found {
		elem, ok = kindsByName[rest]
		return format.KindList, elem, ok
	}
	if rest, found := strings.CutPrefix(s, "!"); found && rest != "list" {
		kind, ok = kindsByName[rest]
		return kind, format.KindEnd, ok
	}

	return 0, 0, false
}
