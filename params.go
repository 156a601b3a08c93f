package xproc

import (
	"fmt"
	"strings"

	"github.com/midbel/codecs/xml"
	"github.com/midbel/codecs/xpath"
	"github.com/midbel/xproc/value"
)

// parameter mirrors what was handed to the engine so that the stored
// value can be given back without querying the transformer state.
type parameter struct {
	text string
	node *xml.Document
}

// SetParameter binds a named transformation parameter. Markup, list
// and composite values are serialized and re-parsed into an engine
// document so templates can traverse them as structured markup; every
// other kind is coerced to its string form first, which is lossy and
// one way. An empty name is a no-op.
func (p *Processor) SetParameter(name string, v value.Value) error {
	if name == "" {
		p.logger.Debug("parameter ignored", "reason", "empty name")
		return nil
	}
	switch v.Kind() {
	case value.KindMarkup, value.KindList, value.KindComposite:
		doc, err := parseMarkup(parameterText(v))
		if err != nil {
			return fmt.Errorf("%s: %w: %s", name, ErrParameterSet, err)
		}
		root := doc.Root()
		if root == nil {
			return fmt.Errorf("%s: %w: document without root", name, ErrParameterSet)
		}
		p.sheet.DefineExprParam(name, xpath.NewValueFromNode(root))
		p.params[name] = parameter{node: doc}
	default:
		str := v.String()
		p.sheet.DefineExprParam(name, xpath.NewValueFromLiteral(str))
		p.params[name] = parameter{text: str}
	}
	return nil
}

// GetParameter returns the stored value of a named parameter: a
// markup value (XML declaration suppressed, synthetic root retained)
// when the parameter was stored as a document, its string form
// otherwise, and the absent value when the parameter is unset.
func (p *Processor) GetParameter(name string) (value.Value, error) {
	stored, ok := p.params[name]
	if !ok {
		return value.None(), nil
	}
	if stored.node == nil {
		return value.Str(stored.text), nil
	}
	doc, err := parseMarkup(value.WriteMarkup(stored.node))
	if err != nil {
		return value.None(), fmt.Errorf("%s: %w: %s", name, ErrParameterGet, err)
	}
	return value.Node(doc.Root()), nil
}

// ClearParameters removes every caller-set parameter. Parameters and
// defaults declared by the stylesheet itself are untouched: caller
// bindings live in their own environment layer, which is simply
// replaced.
func (p *Processor) ClearParameters() {
	clear(p.params)
	p.sheet.Env = p.base.Sub()
}

func parameterText(v value.Value) string {
	if v.IsMarkup() {
		return value.WriteMarkup(v.Node())
	}
	return value.WriteMarkup(value.Encode(v))
}

func parseMarkup(text string) (*xml.Document, error) {
	ps := xml.NewParser(strings.NewReader(text))
	return ps.Parse()
}
