package lang

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// compiled is a cached expression: its program and the names it reads from
// the evaluation context.
type compiled struct {
	once    sync.Once
	program *vm.Program
	free    []string
	err     error
}

const envName = "$env"

// programCache stores compiled expressions keyed by source text.
//
//nolint:gochecknoglobals
var programCache sync.Map

// ClearCache removes all compiled expressions.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	programCache.Range(func(key, _ any) bool {
		programCache.Delete(key)

		return true
	})
}

// compile returns the cached compilation of source, compiling it on first use.
// The second return value reports whether the entry was already cached.
//
// Every identifier the expression reads from the environment is rewritten to
// an explicit $env lookup, so a binding named like a builtin or helper is
// read as the binding. Calls keep resolving to the function.
func compile(source string) (*compiled, bool) {
	value, hit := programCache.LoadOrStore(source, new(compiled))

	entry, _ := value.(*compiled)

	entry.once.Do(func() {
		var idents *identVisitor

		idents, entry.err = scan(source)
		if entry.err != nil {
			return
		}

		entry.free, entry.err = idents.names(source)
		if entry.err != nil {
			return
		}

		opts := append(compileOptions(), expr.Patch(&envPatcher{
			declared: idents.declared,
			patched:  map[*ast.MemberNode]string{},
		}))

		entry.program, entry.err = expr.Compile(source, opts...)
		if entry.err != nil {
			entry.err = ErrSyntax.Wrap(entry.err).
				With(slog.String("source", source))
		}
	})

	return entry, hit
}

// freeNames parses source and returns the identifiers it reads from the
// environment, in order of first appearance.
func freeNames(source string) ([]string, error) {
	v, err := scan(source)
	if err != nil {
		return nil, err
	}

	return v.names(source)
}

func scan(source string) (*identVisitor, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, ErrSyntax.Wrap(err).
			With(slog.String("source", source))
	}

	v := &identVisitor{
		callee:   map[*ast.IdentifierNode]bool{},
		declared: map[string]bool{},
		env:      map[*ast.IdentifierNode]string{},
	}

	ast.Walk(&tree.Node, v)

	return v, nil
}

// identVisitor collects identifier references from an expr-lang AST.
//
// ast.Walk visits children before their parent, so callee identifiers,
// let-bound names and $env lookups are recorded when their parent node is
// visited and resolved at the end.
type identVisitor struct {
	idents   []*ast.IdentifierNode
	callee   map[*ast.IdentifierNode]bool
	declared map[string]bool
	env      map[*ast.IdentifierNode]string // $env base -> property
}

// Visit implements ast.Visitor for identVisitor.
func (v *identVisitor) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		v.idents = append(v.idents, n)

	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			v.callee[id] = true
		}

	case *ast.MemberNode:
		id, ok := n.Node.(*ast.IdentifierNode)
		if !ok || id.Value != envName {
			break
		}

		if prop, ok := n.Property.(*ast.StringNode); ok {
			v.env[id] = prop.Value
		}

	case *ast.VariableDeclaratorNode:
		v.declared[n.Name] = true
	}
}

// names returns the free names in order of first appearance. A $env lookup
// names its property even when a let shadows it. Any other use of $env is
// rejected since its names cannot be checked before running.
func (v *identVisitor) names(source string) ([]string, error) {
	out := make([]string, 0, len(v.idents))

	for _, id := range v.idents {
		name := id.Value

		switch {
		case name == envName:
			prop, ok := v.env[id]
			if !ok {
				return nil, ErrSyntax.With(
					slog.String("issue", "dynamic environment access"),
					slog.String("source", source),
				)
			}

			name = prop

		case v.callee[id], v.declared[name]:
			continue
		}

		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out, nil
}

// envPatcher rewrites environment reads to $env member lookups.
type envPatcher struct {
	declared map[string]bool
	patched  map[*ast.MemberNode]string
}

// Visit implements ast.Visitor for envPatcher.
func (p *envPatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if n.Value == envName || p.declared[n.Value] {
			return
		}

		m := &ast.MemberNode{
			Node:     &ast.IdentifierNode{Value: envName},
			Property: &ast.StringNode{Value: n.Value},
		}
		p.patched[m] = n.Value

		ast.Patch(node, m)

	case *ast.CallNode:
		// Callees are walked before the call; put them back.
		m, ok := n.Callee.(*ast.MemberNode)
		if !ok {
			return
		}

		if name, ok := p.patched[m]; ok {
			ast.Patch(&n.Callee, &ast.IdentifierNode{Value: name})
		}
	}
}
