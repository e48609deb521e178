// Package tree converts a stream of markup elements into a construction tree
// whose attribute values are either literal strings or parsed markup
// extensions.
//
// An [Element] tree comes from [Decode] (XML) or is assembled by the caller.
// A [Builder] walks it depth first:
//
//   - the element's local name becomes [Node.Type];
//   - the Key attribute in the reserved namespace becomes [Node.Key], and
//     no other attribute named Key may appear beside it ([ErrKeyConflict]);
//   - namespace declarations are dropped;
//   - every other attribute value goes through [Dispatch] and is stored
//     under its local name, in source order.
//
// The first attribute that fails to parse aborts the build with an
// [*AttributeError]; no partial tree is returned.
//
// The resulting [Node] values are plain data. [Node.Fingerprint], [Select],
// [Find] and [Node.Print] inspect them without modification.
package tree
