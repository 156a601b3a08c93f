package value

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/midbel/codecs/xml"
)

const (
	rootName  = "root"
	itemName  = "item"
	indexName = "index"
)

// Encode serializes an arbitrary value into a markup document with a
// single synthetic root element wrapping the encoded value. Lists
// become item elements carrying a 0-based index attribute, composites
// become one element per field in field order, markup nodes are
// grafted as is and everything else becomes its string form. Composite
// keys are used verbatim as element names; their validity is the
// responsibility of the caller.
func Encode(v Value) *xml.Document {
	root := xml.NewElement(xml.LocalName(rootName))
	encodeValue(root, v)
	return xml.NewDocument(root)
}

func encodeValue(parent *xml.Element, v Value) {
	switch v.Kind() {
	case KindList:
		for i, item := range v.Items() {
			elem := xml.NewElement(xml.LocalName(itemName))
			attr := xml.NewAttribute(xml.LocalName(indexName), strconv.Itoa(i))
			elem.SetAttribute(attr)
			encodeValue(elem, item)
			parent.Append(elem)
		}
	case KindComposite:
		for _, f := range v.Fields() {
			elem := xml.NewElement(xml.LocalName(f.Key))
			encodeValue(elem, f.Value)
			parent.Append(elem)
		}
	case KindMarkup:
		node := v.Node()
		if doc, ok := node.(*xml.Document); ok {
			node = doc.Root()
		}
		if c := cloneNode(node); c != nil {
			node = c
		}
		if node != nil {
			parent.Append(node)
		}
	default:
		if str := v.String(); str != "" {
			parent.Append(xml.NewText(str))
		}
	}
}

// WriteMarkup serializes a node to its compact textual form with the
// XML declaration suppressed.
func WriteMarkup(node xml.Node) string {
	doc, ok := node.(*xml.Document)
	if !ok {
		root := node
		if c := cloneNode(node); c != nil {
			root = c
		}
		doc = xml.NewDocument(root)
	}
	var buf bytes.Buffer
	ws := xml.NewWriter(&buf)
	ws.WriterOptions |= xml.OptionCompact | xml.OptionNoProlog
	if err := ws.Write(doc); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

func cloneNode(n xml.Node) xml.Node {
	cloner, ok := n.(xml.Cloner)
	if !ok {
		return nil
	}
	return cloner.Clone()
}
