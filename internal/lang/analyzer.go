package lang

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// FunctionDef is a function, method or class definition found in a code
// snippet. Line is 1-based within the snippet. Documented reports whether
// a documentation comment is attached to the definition.
type FunctionDef struct {
	Name       string
	Line       int
	Documented bool
}

// Analyzer runs grammar-backed checks over a code fragment. Fragments
// reconstructed from diff hunks are usually incomplete; tree-sitter's
// error-tolerant parsing still recovers the definitions and branch
// constructs inside them.
type Analyzer struct {
	name     string
	exts     []string
	parser   *sitter.Parser
	language *sitter.Language

	defKinds     map[string]bool
	branchKinds  map[string]bool
	commentKinds map[string]bool
	// pythonDocstring switches doc detection from a preceding comment to a
	// string literal as the first body statement.
	pythonDocstring bool

	// A tree-sitter parser is not safe for concurrent use; files are
	// evaluated in parallel, so every parse holds the lock.
	mu sync.Mutex
}

func newAnalyzer(name string, exts []string, lang *sitter.Language, spec languageSpec) (*Analyzer, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for %s parser: %w", name, err)
	}
	return &Analyzer{
		name:            name,
		exts:            exts,
		parser:          parser,
		language:        lang,
		defKinds:        toSet(spec.defKinds),
		branchKinds:     toSet(spec.branchKinds),
		commentKinds:    toSet(spec.commentKinds),
		pythonDocstring: spec.pythonDocstring,
	}, nil
}

// languageSpec is the per-grammar node-kind table.
type languageSpec struct {
	defKinds        []string
	branchKinds     []string
	commentKinds    []string
	pythonDocstring bool
}

func toSet(kinds []string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// Language returns the human-readable name of the language.
func (a *Analyzer) Language() string {
	return a.name
}

// SupportedExtensions returns the file extensions this analyzer handles.
func (a *Analyzer) SupportedExtensions() []string {
	return a.exts
}

// Functions extracts the definitions declared in the snippet.
func (a *Analyzer) Functions(snippet []byte) ([]FunctionDef, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tree := a.parser.Parse(snippet, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s snippet: tree-sitter returned nil", a.name)
	}
	defer tree.Close()

	var defs []FunctionDef
	a.walk(tree.RootNode(), func(node *sitter.Node) {
		if !a.defKinds[node.Kind()] {
			return
		}
		defs = append(defs, FunctionDef{
			Name:       a.definitionName(node, snippet),
			Line:       int(node.StartPosition().Row) + 1,
			Documented: a.isDocumented(node, snippet),
		})
	})

	return defs, nil
}

// BranchCount counts the control-flow branching constructs in the snippet.
func (a *Analyzer) BranchCount(snippet []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tree := a.parser.Parse(snippet, nil)
	if tree == nil {
		return 0, fmt.Errorf("failed to parse %s snippet: tree-sitter returned nil", a.name)
	}
	defer tree.Close()

	count := 0
	a.walk(tree.RootNode(), func(node *sitter.Node) {
		if a.branchKinds[node.Kind()] {
			count++
		}
	})

	return count, nil
}

func (a *Analyzer) walk(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		a.walk(node.NamedChild(i), visit)
	}
}

func (a *Analyzer) definitionName(node *sitter.Node, src []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nameNode.Utf8Text(src)
	}

	// C puts the name inside a nested declarator chain.
	decl := node.ChildByFieldName("declarator")
	for decl != nil {
		if nameNode := decl.ChildByFieldName("declarator"); nameNode != nil {
			decl = nameNode
			continue
		}
		return decl.Utf8Text(src)
	}

	return ""
}

func (a *Analyzer) isDocumented(node *sitter.Node, src []byte) bool {
	if a.pythonDocstring {
		return a.hasDocstring(node)
	}

	prev := node.PrevNamedSibling()
	if prev == nil || !a.commentKinds[prev.Kind()] {
		return false
	}
	// The comment must sit directly above the definition.
	return int(prev.EndPosition().Row)+1 >= int(node.StartPosition().Row)
}

func (a *Analyzer) hasDocstring(node *sitter.Node) bool {
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}
	first := body.NamedChild(0)
	if first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}
	return first.NamedChild(0).Kind() == "string"
}
