package xproc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/midbel/codecs/xml"
	"github.com/midbel/codecs/xpath"
	"github.com/midbel/codecs/xslt"
	"github.com/midbel/xproc/value"
)

// ResolveFunc fetches an external resource referenced from the
// stylesheet. href is the reference as written, base the context
// directory of the processor. The returned value is interpreted with
// the same dispatch as Transform input: a textual value is read as a
// file path, a markup value is used directly and anything else is
// routed through the canonical encoder.
type ResolveFunc func(href, base string) (value.Value, error)

// SetResolver installs the resource-resolution callback. At most one
// callback is installed at a time; passing nil uninstalls it, falling
// back to the engine default of reading href relative to the context
// directory.
func (p *Processor) SetResolver(fn ResolveFunc) {
	if fn == nil {
		p.logger.Debug("resolver uninstalled")
	}
	p.resolver = fn
}

// Resolver returns the installed callback, or nil when none is.
func (p *Processor) Resolver() ResolveFunc {
	return p.resolver
}

// executionEnv builds the environment a single transformation runs
// in. Variable and parameter lookups fall through to the stylesheet;
// the document and doc functions are redefined in the environment's
// builtin registry so external resource references reach the fetch
// bridge. A fresh environment per run keeps variables bound during
// one transformation from leaking into the next.
func (p *Processor) executionEnv() *xslt.Env {
	env := xslt.Enclosed(p.sheet)
	fetch := func(ctx xpath.Context, args []xpath.Expr) (xpath.Sequence, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("document: invalid number of arguments")
		}
		items, err := args[0].Find(ctx)
		if err != nil {
			return nil, err
		}
		if items.Empty() {
			return nil, nil
		}
		href, ok := items[0].Value().(string)
		if !ok {
			return nil, fmt.Errorf("document: string expected")
		}
		doc, err := p.fetchResource(href)
		if err != nil {
			return nil, err
		}
		return xpath.Singleton(doc), nil
	}
	env.Builtins.Define("document", fetch)
	env.Builtins.Define("doc", fetch)
	return env
}

func (p *Processor) fetchResource(href string) (*xml.Document, error) {
	if p.resolver == nil {
		return p.loadResource(href)
	}
	res, err := p.resolver(href, p.context)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", href, err)
	}
	switch {
	case res.IsMarkup():
		node := res.Node()
		if doc, ok := node.(*xml.Document); ok {
			return doc, nil
		}
		return xml.NewDocument(node), nil
	case res.IsText():
		return p.loadResource(res.String())
	default:
		return value.Encode(res), nil
	}
}

func (p *Processor) loadResource(href string) (*xml.Document, error) {
	file := href
	if !filepath.IsAbs(file) {
		file = filepath.Join(p.context, file)
	}
	r, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", href, ErrInputNotFound)
	}
	defer r.Close()

	ps := xml.NewParser(r)
	doc, err := ps.Parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", href, err)
	}
	return doc, nil
}
