package xproc

import (
	"fmt"
	"io"
	"maps"

	"github.com/midbel/codecs/xml"
	"github.com/midbel/codecs/xslt"
	"github.com/midbel/xproc/value"
)

const (
	propMethod     = "method"
	propVersion    = "version"
	propEncoding   = "encoding"
	propIndent     = "indent"
	propOmitDecl   = "omit-xml-declaration"
	propMediaType  = "media-type"
	propStandalone = "standalone"
)

var outputProperties = map[string]struct{}{
	propMethod:     {},
	propVersion:    {},
	propEncoding:   {},
	propIndent:     {},
	propOmitDecl:   {},
	propMediaType:  {},
	propStandalone: {},
}

// SetOutputProperty sets a named serialization property. Properties
// set this way are sealed: an equivalent xsl:output declaration in
// the stylesheet can not override them. The value is coerced to its
// string form (absent and null become the empty string). An empty
// name is a no-op; an unknown property name or an unsupported output
// method fails with ErrOutputPropertySet.
func (p *Processor) SetOutputProperty(name string, v value.Value) error {
	if name == "" {
		p.logger.Debug("output property ignored", "reason", "empty name")
		return nil
	}
	str := v.String()
	if _, ok := outputProperties[name]; !ok {
		return fmt.Errorf("%s=%q: %w: unknown property", name, str, ErrOutputPropertySet)
	}
	if name == propMethod && !supportedMethod(str) {
		return fmt.Errorf("%s=%q: %w: unsupported method", name, str, ErrOutputPropertySet)
	}
	p.props[name] = str
	return nil
}

// GetOutputProperty returns the value of a property previously set on
// the processor. The second result reports whether it is set.
func (p *Processor) GetOutputProperty(name string) (string, bool) {
	str, ok := p.props[name]
	return str, ok
}

// OutputProperties returns a copy of the current property table.
func (p *Processor) OutputProperties() map[string]string {
	return maps.Clone(p.props)
}

func supportedMethod(method string) bool {
	switch method {
	case "xml", "text", "html":
		return true
	default:
		return false
	}
}

func (p *Processor) writeResult(w io.Writer, result xml.Node) error {
	doc, ok := result.(*xml.Document)
	if !ok {
		doc = xml.NewDocument(result)
	}
	out := p.effectiveOutput()
	if out.Method == "text" {
		for _, n := range doc.Nodes {
			if _, err := io.WriteString(w, n.Value()); err != nil {
				return err
			}
		}
		return nil
	}
	ws := xml.NewWriter(w)
	if !out.Indent {
		ws.WriterOptions |= xml.OptionCompact
	}
	if out.OmitProlog {
		ws.WriterOptions |= xml.OptionNoProlog
	}
	if out.Method == "html" && !out.OmitProlog {
		ws.PrologWriter = xml.PrologWriterFunc(writeDoctype)
	}
	return ws.Write(doc)
}

func writeDoctype(w io.Writer) error {
	_, err := io.WriteString(w, "<!DOCTYPE html>")
	return err
}

// effectiveOutput merges the stylesheet's own output declaration with
// the sealed processor properties, the latter taking precedence.
func (p *Processor) effectiveOutput() xslt.Output {
	out := *p.sheet.GetOutput("")
	if v, ok := p.props[propMethod]; ok {
		out.Method = v
	}
	if v, ok := p.props[propVersion]; ok {
		out.Version = v
	}
	if v, ok := p.props[propEncoding]; ok {
		out.Encoding = v
	}
	if v, ok := p.props[propIndent]; ok {
		out.Indent = v == "yes"
	}
	if v, ok := p.props[propOmitDecl]; ok {
		out.OmitProlog = v == "yes"
	}
	return out
}
