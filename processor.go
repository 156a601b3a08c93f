// Package xproc exposes the codecs XSLT engine behind a small
// processor facade: flexible input values (markup documents, tagged
// scripting values, strings, file paths) are coerced into the form
// the engine accepts, the engine runs the transformation, and results
// come back as plain strings or markup values.
package xproc

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/midbel/codecs/xml"
	"github.com/midbel/codecs/xslt"
	"github.com/midbel/xproc/value"
)

type Option func(*Processor)

// WithLogger sets the logger receiving debug diagnostics for the
// documented no-op branches. Diagnostics are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithContextDir sets the base directory used to resolve external
// resources referenced by the stylesheet. It defaults to the
// directory of the stylesheet file.
func WithContextDir(dir string) Option {
	return func(p *Processor) {
		p.context = dir
	}
}

// Processor binds one stylesheet to one engine transformer for its
// whole lifetime. Changing the stylesheet means creating a new
// Processor. A Processor holds no internal synchronization and must
// not be shared between goroutines without external serialization.
type Processor struct {
	sheet *xslt.Stylesheet
	base  *xslt.Env

	params   map[string]parameter
	props    map[string]string
	resolver ResolveFunc

	context string
	logger  *slog.Logger
}

// New creates a Processor from a stylesheet source. A markup value is
// serialized and handed to the engine directly; a textual value is
// treated as a file path. New fails with ErrStylesheetNotFound when
// the path can not be read and with ErrStylesheetInvalid when the
// engine rejects the stylesheet; on failure no instance exists.
func New(source value.Value, options ...Option) (*Processor, error) {
	p := Processor{
		params: make(map[string]parameter),
		props:  make(map[string]string),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(&p)
	}
	sheet, err := p.loadStylesheet(source)
	if err != nil {
		return nil, err
	}
	p.sheet = sheet
	p.base = sheet.Env
	p.sheet.Env = p.base.Sub()
	return &p, nil
}

// Transform runs the stylesheet against the given input and returns
// the serialized result. A markup value is used directly, a textual
// value is treated as a file path and anything else is routed through
// the canonical encoder; the absent value therefore transforms the
// empty document. Every call is independent: given unchanged
// parameters and properties the same input yields the same output.
func (p *Processor) Transform(input value.Value) (string, error) {
	doc, err := p.resolveInput(input)
	if err != nil {
		return "", err
	}
	result, err := p.execute(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", value.WriteMarkup(doc), ErrTransformFailed, err)
	}
	var buf bytes.Buffer
	if err := p.writeResult(&buf, result); err != nil {
		return "", fmt.Errorf("%s: %w: %s", value.WriteMarkup(doc), ErrTransformFailed, err)
	}
	return buf.String(), nil
}

// execute drives the main template with a context whose environment
// the processor owns. Variables and parameters still resolve through
// the stylesheet, but function calls resolve against the environment's
// own registry, where the fetch bridge is installed; the engine's
// Execute builds that registry internally and out of reach.
func (p *Processor) execute(doc *xml.Document) (xml.Node, error) {
	tpl, err := p.mainTemplate()
	if err != nil {
		return nil, err
	}
	ctx := xslt.Context{
		ContextNode: doc,
		Mode:        p.sheet.Mode,
		Index:       1,
		Size:        1,
		Stylesheet:  p.sheet,
		Env:         p.executionEnv(),
	}
	nodes, err := tpl.Execute(&ctx)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return xml.NewDocument(nodes[0]), nil
	}
	if len(nodes) > 1 && !p.sheet.WrapRoot {
		return nil, fmt.Errorf("result tree has %d root nodes", len(nodes))
	}
	root := xml.NewElement(xml.LocalName("root"))
	for i := range nodes {
		root.Append(nodes[i])
	}
	return xml.NewDocument(root), nil
}

func (p *Processor) mainTemplate() (*xslt.Template, error) {
	for _, m := range p.sheet.Modes {
		if m.Name != p.sheet.Mode {
			continue
		}
		for _, t := range m.Templates {
			if t.Match == "/" {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("no template matching the document root")
}

func (p *Processor) loadStylesheet(source value.Value) (*xslt.Stylesheet, error) {
	switch {
	case source.IsMarkup():
		return p.loadFromText(value.WriteMarkup(source.Node()))
	case source.IsText():
		file := source.String()
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("%s: %w", file, ErrStylesheetNotFound)
		}
		if p.context == "" {
			p.context = filepath.Dir(file)
		}
		sheet, err := xslt.Load(file, p.context)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", file, err, ErrStylesheetInvalid)
		}
		return sheet, nil
	default:
		return nil, fmt.Errorf("%s value: %w", source.Kind(), ErrStylesheetInvalid)
	}
}

// loadFromText bridges in-memory stylesheets to the engine loader,
// which only accepts files.
func (p *Processor) loadFromText(text string) (*xslt.Stylesheet, error) {
	tmp, err := os.CreateTemp("", "xproc-*.xsl")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrStylesheetInvalid)
	}
	defer os.Remove(tmp.Name())

	_, err = io.WriteString(tmp, text)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrStylesheetInvalid)
	}
	if p.context == "" {
		p.context = "."
	}
	sheet, err := xslt.Load(tmp.Name(), p.context)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrStylesheetInvalid)
	}
	return sheet, nil
}

func (p *Processor) resolveInput(input value.Value) (*xml.Document, error) {
	switch {
	case input.IsMarkup():
		node := input.Node()
		if doc, ok := node.(*xml.Document); ok {
			return doc, nil
		}
		return xml.NewDocument(node), nil
	case input.IsText():
		return p.loadDocument(input.String())
	default:
		return value.Encode(input), nil
	}
}

func (p *Processor) loadDocument(file string) (*xml.Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, ErrInputNotFound)
	}
	defer r.Close()

	ps := xml.NewParser(r)
	doc, err := ps.Parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", file, ErrTransformFailed, err)
	}
	return doc, nil
}
