// Package nbtyaml converts tag trees to and from a lossless YAML form.
//
// A document is a mapping with a single key, the root name, whose value is
// the root compound. Compounds are YAML mappings and every entry carries a
// local tag naming its kind:
//
//	hello world:
//	  name: !string "Bananrama"
//	  Health: !float 20.0
//	  Pos: !list/double [0.5, 64.0, -3.25]
//	  Biomes: !ints [1, 1, 4]
//	  Level: !compound
//	    xPos: !int -12
//	  Inventory: !list/compound
//	    - Count: !byte 1
//	      id: !string "minecraft:stone"
//
// Kinds: !byte, !short, !int, !long, !float, !double, !string, !bytes
// (ByteArray), !ints (IntArray), !longs (LongArray), !compound and
// !list/<element kind>. List elements omit their tag except nested lists,
// which need it for their own element kind. NaN floats are written as raw
// bits in hex (!float 0x7fc00000) so payloads survive; duplicate compound
// names and entry order are preserved.
package nbtyaml
