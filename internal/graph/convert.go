package graph

import (
	"github.com/google/uuid"

	"github.com/jade-codes/mother/internal/lspclient"
)

// ConvertSymbolKind maps an LSP wire symbol kind to the graph's closed
// symbol kind set.
func ConvertSymbolKind(kind lspclient.SymbolKind) SymbolKind {
	switch kind {
	case lspclient.SymbolKindModule, lspclient.SymbolKindNamespace, lspclient.SymbolKindPackage:
		return SymbolKindModule
	case lspclient.SymbolKindClass:
		return SymbolKindClass
	case lspclient.SymbolKindStruct:
		return SymbolKindStruct
	case lspclient.SymbolKindEnum:
		return SymbolKindEnum
	case lspclient.SymbolKindInterface:
		return SymbolKindInterface
	case lspclient.SymbolKindFunction, lspclient.SymbolKindConstructor:
		return SymbolKindFunction
	case lspclient.SymbolKindMethod:
		return SymbolKindMethod
	case lspclient.SymbolKindVariable:
		return SymbolKindVariable
	case lspclient.SymbolKindConstant:
		return SymbolKindConstant
	case lspclient.SymbolKindField, lspclient.SymbolKindProperty:
		return SymbolKindField
	case lspclient.SymbolKindTypeParameter:
		return SymbolKindTypeAlias
	case lspclient.SymbolKindEnumMember:
		return SymbolKindConstant
	default:
		return SymbolKindVariable
	}
}

// LSPSymbolToNode converts one LSP symbol into a graph SymbolNode.
// When hasParent is true, parentQualifiedName takes priority over the
// symbol's own container name when building the qualified name — hasParent
// is set only when recursing into a hierarchical DocumentSymbol's children, where the
// parent's own qualified name is the more precise choice.
func LSPSymbolToNode(symbol lspclient.Symbol, filePath, parentQualifiedName string, hasParent bool) SymbolNode {
	qualifiedName := symbol.Name

	switch {
	case hasParent:
		qualifiedName = parentQualifiedName + "::" + symbol.Name
	case symbol.ContainerName != "":
		qualifiedName = symbol.ContainerName + "::" + symbol.Name
	}

	return SymbolNode{
		ID:            uuid.New().String(),
		Name:          symbol.Name,
		QualifiedName: qualifiedName,
		Kind:          ConvertSymbolKind(symbol.Kind),
		Visibility:    VisibilityUnknown,
		FilePath:      filePath,
		StartLine:     int(symbol.StartLine) + 1,
		EndLine:       int(symbol.EndLine) + 1,
		Signature:     symbol.Detail,
	}
}

// FlattenSymbols recursively converts symbol and its children into graph
// nodes, in pre-order (the symbol itself precedes its descendants).
func FlattenSymbols(symbol lspclient.Symbol, filePath, parentQualifiedName string, hasParent bool) []SymbolNode {
	node := LSPSymbolToNode(symbol, filePath, parentQualifiedName, hasParent)
	result := []SymbolNode{node}

	for _, child := range symbol.Children {
		result = append(result, FlattenSymbols(child, filePath, node.QualifiedName, true)...)
	}

	return result
}

// ConvertSymbols converts a forest of top-level LSP symbols into a flat,
// pre-order list of graph nodes.
func ConvertSymbols(symbols []lspclient.Symbol, filePath string) []SymbolNode {
	var result []SymbolNode

	for _, symbol := range symbols {
		result = append(result, FlattenSymbols(symbol, filePath, "", false)...)
	}

	return result
}
