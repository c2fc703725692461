package requirement

import (
	"fmt"
	"sort"
	"sync"
)

// Result is the outcome of parsing one requirement field. Expression is
// never nil; Skipped lists the input fragments the parser could not use, in
// the order they were dropped. Dropping is the mini-language's leniency
// policy, so Skipped is diagnostic, not an error.
type Result struct {
	Expression PrerequisiteExpression `json:"expression"`
	Skipped    []string               `json:"skipped,omitempty"`
}

// ExpressionParser parses prerequisite fields into grouped requirements.
// Parsers are total: every string input yields a Result, malformed pieces
// degrade to Skipped entries. Implementations must be safe for concurrent
// use.
type ExpressionParser interface {
	// Name returns the short name used for registry lookup (e.g. "split").
	Name() string

	// Parse parses a raw requirement field. The null token and blank input
	// yield an empty expression.
	Parse(field string) Result
}

// ParserRegistry manages the available expression parsers by name.
// Thread-safe for concurrent use.
type ParserRegistry struct {
	mu      sync.RWMutex
	parsers map[string]ExpressionParser
}

// NewParserRegistry creates an empty parser registry.
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{parsers: make(map[string]ExpressionParser)}
}

// NewDefaultRegistry creates a registry with both built-in parsers
// registered: the grammar parser and the split parser.
func NewDefaultRegistry() *ParserRegistry {
	registry := NewParserRegistry()
	// Both constructors produce valid names, so registration cannot fail.
	_ = registry.Register(NewGrammarParser())
	_ = registry.Register(NewSplitParser())
	return registry
}

// DefaultParserName names the parser used when no explicit choice is made.
const DefaultParserName = "grammar"

// Register adds a parser to the registry. Returns an error if the parser is
// nil, has an empty name, or a parser with the same name is already
// registered.
func (r *ParserRegistry) Register(parser ExpressionParser) error {
	if parser == nil {
		return fmt.Errorf("expression parser cannot be nil")
	}
	parserName := parser.Name()
	if parserName == "" {
		return fmt.Errorf("expression parser name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[parserName]; exists {
		return fmt.Errorf("expression parser %q already registered", parserName)
	}
	r.parsers[parserName] = parser
	return nil
}

// Unregister removes a parser by name. Returns an error if the parser is not
// found.
func (r *ParserRegistry) Unregister(parserName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[parserName]; !exists {
		return fmt.Errorf("expression parser %q not found", parserName)
	}
	delete(r.parsers, parserName)
	return nil
}

// Get returns a parser by name.
func (r *ParserRegistry) Get(parserName string) (ExpressionParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parser, ok := r.parsers[parserName]
	return parser, ok
}

// List returns all registered parser names in sorted order.
func (r *ParserRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parserNames := make([]string, 0, len(r.parsers))
	for parserName := range r.parsers {
		parserNames = append(parserNames, parserName)
	}
	sort.Strings(parserNames)
	return parserNames
}

// Count returns the number of registered parsers.
func (r *ParserRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parsers)
}

// emptyResult is the Result for null or unusable input.
func emptyResult() Result {
	return Result{Expression: PrerequisiteExpression{}}
}
