package parsers

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// Function extraction modes.
const (
	ModeRegex      = "regex"
	ModeTreeSitter = "treesitter"
)

// FunctionExtractor returns the function names declared or defined in C or
// header source.
type FunctionExtractor interface {
	Functions(source []byte) ([]string, error)
}

// NewFunctionExtractor returns the extractor for the given mode.
func NewFunctionExtractor(mode string) (FunctionExtractor, error) {
	switch mode {
	case "", ModeRegex:
		return regexFunctions{}, nil
	case ModeTreeSitter:
		return NewTreeSitterFunctions(), nil
	default:
		return nil, fmt.Errorf("unknown function extraction mode %q", mode)
	}
}

type regexFunctions struct{}

func (regexFunctions) Functions(source []byte) ([]string, error) {
	return Functions(string(source)), nil
}

// TreeSitterFunctions extracts function definitions and prototypes from a
// tree-sitter-c syntax tree. Call sites are not reported.
type TreeSitterFunctions struct {
	language *sitter.Language
}

// NewTreeSitterFunctions creates a tree-sitter based extractor.
func NewTreeSitterFunctions() *TreeSitterFunctions {
	return &TreeSitterFunctions{language: sitter.NewLanguage(c.Language())}
}

// Functions parses source and returns function names in source order.
// A parser is created per call; tree-sitter parsers are not safe for
// concurrent use.
func (p *TreeSitterFunctions) Functions(source []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to set C language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse C source")
	}
	defer tree.Close()

	var names []string
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			if name := findFunctionName(n.ChildByFieldName("declarator"), source); name != "" {
				names = append(names, name)
			}
			// Nested declarations inside bodies are locals, not functions.
			return false
		case "declaration":
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(uint(i))
				if !hasFunctionDeclarator(child) {
					continue
				}
				if name := findFunctionName(child, source); name != "" {
					names = append(names, name)
				}
			}
			return false
		}
		return true
	})
	return names, nil
}

// findFunctionName finds the identifier inside a (possibly pointer-wrapped)
// function declarator.
func findFunctionName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "identifier":
		return nodeText(node, source)
	case "function_declarator", "pointer_declarator", "parenthesized_declarator":
		if decl := node.ChildByFieldName("declarator"); decl != nil {
			return findFunctionName(decl, source)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "identifier" {
			return nodeText(child, source)
		}
	}
	return ""
}

// hasFunctionDeclarator reports whether node is a function declarator or a
// pointer declarator wrapping one (a function returning a pointer).
func hasFunctionDeclarator(node *sitter.Node) bool {
	for node != nil {
		switch node.Kind() {
		case "function_declarator":
			return true
		case "pointer_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return false
		}
	}
	return false
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree walks the tree depth-first. Returning false from visit skips the
// node's children.
func walkTree(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visit)
	}
}
