package lang

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Registry maps file extensions to language analyzers.
type Registry struct {
	analyzers map[string]*Analyzer
}

// NewRegistry builds the registry with every supported grammar.
func NewRegistry() *Registry {
	registry := &Registry{
		analyzers: make(map[string]*Analyzer),
	}

	for _, build := range []func() (*Analyzer, error){
		newGoAnalyzer,
		newPythonAnalyzer,
		newJavaAnalyzer,
		newCAnalyzer,
		newTypeScriptAnalyzer,
		newTSXAnalyzer,
	} {
		analyzer, err := build()
		if err != nil {
			panic(fmt.Errorf("failed to create language analyzer: %w", err))
		}
		registry.register(analyzer)
	}

	return registry
}

func (r *Registry) register(a *Analyzer) {
	for _, ext := range a.SupportedExtensions() {
		r.analyzers[ext] = a
	}
}

// ForFile returns the analyzer for the file's extension, or nil when the
// language is not grammar-backed and the caller should fall back to the
// textual heuristics.
func (r *Registry) ForFile(path string) *Analyzer {
	ext := strings.ToLower(filepath.Ext(path))
	return r.analyzers[ext]
}

func newGoAnalyzer() (*Analyzer, error) {
	lang := sitter.NewLanguage(tree_sitter_go.Language())
	return newAnalyzer("Go", []string{".go"}, lang, languageSpec{
		defKinds: []string{"function_declaration", "method_declaration"},
		branchKinds: []string{
			"if_statement", "for_statement",
			"expression_switch_statement", "type_switch_statement",
			"select_statement",
		},
		commentKinds: []string{"comment"},
	})
}

func newPythonAnalyzer() (*Analyzer, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	return newAnalyzer("Python", []string{".py", ".pyw"}, lang, languageSpec{
		defKinds: []string{"function_definition", "class_definition"},
		branchKinds: []string{
			"if_statement", "elif_clause", "for_statement", "while_statement",
			"try_statement", "except_clause", "with_statement",
			"match_statement", "case_clause", "conditional_expression",
		},
		commentKinds:    []string{"comment"},
		pythonDocstring: true,
	})
}

func newJavaAnalyzer() (*Analyzer, error) {
	lang := sitter.NewLanguage(tree_sitter_java.Language())
	return newAnalyzer("Java", []string{".java"}, lang, languageSpec{
		defKinds: []string{
			"method_declaration", "constructor_declaration",
			"class_declaration", "interface_declaration",
		},
		branchKinds: []string{
			"if_statement", "for_statement", "enhanced_for_statement",
			"while_statement", "do_statement", "switch_expression",
			"catch_clause", "ternary_expression",
		},
		commentKinds: []string{"line_comment", "block_comment"},
	})
}

func newCAnalyzer() (*Analyzer, error) {
	lang := sitter.NewLanguage(tree_sitter_c.Language())
	return newAnalyzer("C", []string{".c", ".h"}, lang, languageSpec{
		defKinds: []string{"function_definition"},
		branchKinds: []string{
			"if_statement", "for_statement", "while_statement",
			"do_statement", "switch_statement", "conditional_expression",
		},
		commentKinds: []string{"comment"},
	})
}

func newTypeScriptAnalyzer() (*Analyzer, error) {
	lang := sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	return newAnalyzer("TypeScript", []string{".ts"}, lang, typescriptSpec())
}

func newTSXAnalyzer() (*Analyzer, error) {
	lang := sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	return newAnalyzer("TSX", []string{".tsx"}, lang, typescriptSpec())
}

func typescriptSpec() languageSpec {
	return languageSpec{
		defKinds: []string{
			"function_declaration", "generator_function_declaration",
			"method_definition", "class_declaration",
		},
		branchKinds: []string{
			"if_statement", "for_statement", "for_in_statement",
			"while_statement", "do_statement", "switch_statement",
			"catch_clause", "ternary_expression",
		},
		commentKinds: []string{"comment"},
	}
}
