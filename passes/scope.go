package passes

import "github.com/npillmayer/sixc/ast"

// ScopedKinds are the node kinds that own a scope, per §3's
// "scoped_types = {unit, fun}".
var ScopedKinds = map[ast.Kind]bool{"unit": true, "fun": true}

// Scope is one entry of a ScopedPass's open-scope stack: the accumulated
// name and constant bindings for the node currently being visited.
type Scope struct {
	KnownNames     map[string]interface{}
	KnownConstants map[string]interface{}
}

func newScope() *Scope {
	return &Scope{KnownNames: map[string]interface{}{}, KnownConstants: map[string]interface{}{}}
}

// ScopedPass extends ast.DispatchPass with a scope stack, pushed on
// entering a node whose kind is in ScopedKinds and popped on exit.
// bind_name/look_up_name and bind_constant/look_up_constant from §4.6
// are BindName/LookupName and BindConstant/LookupConstant below; lookup
// walks the stack innermost-first, so inner definitions shadow outer ones.
type ScopedPass struct {
	*ast.DispatchPass
	scopes []*Scope
}

// NewScopedPass returns an empty ScopedPass ready for OnEnter/OnExit
// registration.
func NewScopedPass() *ScopedPass {
	return &ScopedPass{DispatchPass: ast.NewDispatchPass()}
}

// Enter implements ast.Pass, pushing a new scope before dispatching to any
// registered EnterFunc for scope-owning kinds. The new scope starts out
// with the "known_names" and "known_constants" bindings an earlier pass
// left on the node's attrs, if any.
func (p *ScopedPass) Enter(kind ast.Kind, node *ast.AstNode) *ast.AstNode {
	if ScopedKinds[kind] {
		sc := newScope()
		if m, ok := node.Attrs["known_names"].(map[string]interface{}); ok {
			for k, v := range m {
				sc.KnownNames[k] = v
			}
		}
		if m, ok := node.Attrs["known_constants"].(map[string]interface{}); ok {
			for k, v := range m {
				sc.KnownConstants[k] = v
			}
		}
		p.scopes = append(p.scopes, sc)
		tracer().Debugf("push scope for %s (depth %d)", kind, len(p.scopes))
	}
	return p.DispatchPass.Enter(kind, node)
}

// Exit implements ast.Pass. For a scope-owning kind, the accumulated scope
// bindings are attached to the node's attrs (as "known_names" and
// "known_constants") before any registered ExitFunc runs, and the scope is
// popped afterward.
func (p *ScopedPass) Exit(kind ast.Kind, node *ast.AstNode) []*ast.AstNode {
	if ScopedKinds[kind] {
		sc := p.topScope()
		node = node.Clone(
			ast.WithAttr("known_names", sc.KnownNames),
			ast.WithAttr("known_constants", sc.KnownConstants),
		)
	}
	out := p.DispatchPass.Exit(kind, node)
	if ScopedKinds[kind] {
		tracer().Debugf("pop scope for %s (depth %d)", kind, len(p.scopes))
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
	return out
}

func (p *ScopedPass) topScope() *Scope {
	if len(p.scopes) == 0 {
		panic("passes: scope operation outside of any open scope")
	}
	return p.scopes[len(p.scopes)-1]
}

// BindName writes name into the innermost open scope's known_names.
func (p *ScopedPass) BindName(name string, value interface{}) {
	p.topScope().KnownNames[name] = value
}

// LookupName walks the scope stack innermost-first, returning the first
// binding found for name.
func (p *ScopedPass) LookupName(name string) (interface{}, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if v, ok := p.scopes[i].KnownNames[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// BindConstant writes name into the innermost open scope's known_constants.
func (p *ScopedPass) BindConstant(name string, value interface{}) {
	p.topScope().KnownConstants[name] = value
}

// LookupConstant walks the scope stack innermost-first, returning the
// first constant binding found for name.
func (p *ScopedPass) LookupConstant(name string) (interface{}, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if v, ok := p.scopes[i].KnownConstants[name]; ok {
			return v, true
		}
	}
	return nil, false
}
