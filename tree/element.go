package tree

// Name is a namespace-resolved element or attribute name.
type Name struct {
	Space string // namespace URI, or "xmlns" for a prefixed declaration
	Local string
}

// String returns "{space}local", or "local" when Space is empty.
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}

	return "{" + n.Space + "}" + n.Local
}

// Attr is an attribute as it appears on an input element.
type Attr struct {
	Name  Name
	Value string
}

// NewAttr returns an attribute in namespace space.
func NewAttr(space, local, value string) Attr {
	return Attr{Name: Name{Space: space, Local: local}, Value: value}
}

// isNamespaceDecl reports whether a declares a namespace (xmlns or
// xmlns:prefix) rather than carrying data.
func (a Attr) isNamespaceDecl() bool {
	return a.Name.Space == "xmlns" ||
		(a.Name.Space == "" && a.Name.Local == "xmlns")
}

// Element is one node of the input element stream: a name, its attributes in
// source order, and its child elements in document order.
type Element struct {
	Name     Name
	Attrs    []Attr
	Children []*Element
}

// NewElement returns an element in namespace space with the given
// attributes.
func NewElement(space, local string, attrs ...Attr) *Element {
	return &Element{Name: Name{Space: space, Local: local}, Attrs: attrs}
}

// Append adds children to e and returns e.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)

	return e
}
