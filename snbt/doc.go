// Package snbt renders tag trees as stringified NBT, the text form used by
// Minecraft commands and most NBT viewers:
//
//	{Name:"Steve",Pos:[0.5d,64.0d,-3.25d],Health:20.0f,Inventory:[{Count:1b,id:"minecraft:stone"}]}
//
// Numeric kinds carry a suffix (b, s, L, f, d; Int has none), arrays are
// written as [B;...], [I;...] and [L;...], and names are quoted only when
// they contain characters outside [0-9A-Za-z_.+-].
//
// Output is compact by default. WithIndent produces one entry per line and
// WithColors highlights names, strings and numbers with ANSI escapes.
package snbt
