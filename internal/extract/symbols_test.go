package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for symbol extraction:
// - Classify functions, nested functions, typedefs, macros, module constants
// - Exclude function-local variables from the symbol list
// - Collapse multi-line headers into single-line signatures
// - Strip initializers from constant signatures
// - Elide aggregate bodies in typedef signatures
// - Associate immediately preceding comment blocks as docs
// - Never treat comments inside a body as docs
// - Honor the blank-line tolerance option

func TestSymbols_Kinds(t *testing.T) {
	t.Parallel()

	fc := extractFixture(t, "../../testdata/code/c/sample_calculator.c")

	expected := map[string]SymbolKind{
		"MAX_CALCULATION_STEPS":       SymbolMacroConstant,
		"DEFAULT_PRECISION":           SymbolMacroConstant,
		"PI_CONSTANT":                 SymbolMacroConstant,
		"CalculationModes":            SymbolTypedef,
		"FormattedResult":             SymbolTypedef,
		"SampleCalculator":            SymbolTypedef,
		"CALCULATION_MODES":           SymbolModuleConstant,
		"create_sample_calculator":    SymbolFunction,
		"add_numbers":                 SymbolFunction,
		"validate_inputs":             SymbolNestedFunction,
		"log_operation":               SymbolNestedFunction,
		"multiply_and_format":         SymbolFunction,
		"calculate_product":           SymbolNestedFunction,
		"multiply_recursive":          SymbolNestedFunction,
		"format_result":               SymbolNestedFunction,
		"calculate_circle_area":       SymbolFunction,
		"validate_radius":             SymbolNestedFunction,
		"helper_function":             SymbolFunction,
		"format_dict_items":           SymbolNestedFunction,
		"advanced_calculator_factory": SymbolFunction,
		"create_calculator_with_mode": SymbolNestedFunction,
		"validate_mode":               SymbolNestedFunction,
		"destroy_sample_calculator":   SymbolFunction,
		"MODULE_VERSION":              SymbolModuleConstant,
		"AUTHOR_NAME":                 SymbolModuleConstant,
		"AUTHOR_EMAIL":                SymbolModuleConstant,
	}

	for name, kind := range expected {
		sym := symbolByName(t, fc, name)
		assert.Equal(t, kind, sym.Kind, name)
	}
}

func TestSymbols_SourceOrder(t *testing.T) {
	t.Parallel()

	fc := extractFixture(t, "../../testdata/code/c/sample_calculator.c")

	prev := -1
	for sym := range fc.SymbolSeq() {
		assert.GreaterOrEqual(t, sym.Span.Start, prev,
			"symbols must appear in source order (%q)", sym.Name)
		prev = sym.Span.Start
	}
}

func TestSymbols_LocalsExcluded(t *testing.T) {
	t.Parallel()

	fc := extractFixture(t, "../../testdata/code/c/sample_calculator.c")

	names := symbolNames(fc)
	for _, local := range []string{"result", "empty_result", "formatted_result", "valid_mode", "area"} {
		assert.NotContains(t, names, local, "function locals are not symbols")
	}
}

func TestSymbols_Signatures(t *testing.T) {
	t.Parallel()

	fc := extractFixture(t, "../../testdata/code/c/sample_calculator.c")

	assert.Equal(t,
		"int add_numbers(SampleCalculator* calc, int a, int b)",
		symbolByName(t, fc, "add_numbers").Signature)

	// Initializers never leak into constant signatures, even multi-line
	// designated-initializer literals.
	assert.Equal(t,
		"static const CalculationModes CALCULATION_MODES",
		symbolByName(t, fc, "CALCULATION_MODES").Signature)
	assert.Equal(t,
		"static const char* MODULE_VERSION",
		symbolByName(t, fc, "MODULE_VERSION").Signature)

	// Typedef bodies are elided.
	assert.Equal(t,
		"typedef struct { ... } CalculationModes;",
		symbolByName(t, fc, "CalculationModes").Signature)

	// Macros carry the full directive.
	assert.Equal(t,
		"#define DEFAULT_PRECISION 2",
		symbolByName(t, fc, "DEFAULT_PRECISION").Signature)
}

func TestSymbols_MultilineHeaderCollapsed(t *testing.T) {
	t.Parallel()

	unit := SourceUnit{
		Path: "wrapped.c",
		Text: []byte("int compute(int first,\n            int second,\n            int third) {\n    return first + second + third;\n}\n"),
	}
	fc, err := New(Options{}).Extract(context.Background(), unit)
	require.NoError(t, err)

	sym := symbolByName(t, fc, "compute")
	assert.Equal(t, "int compute(int first, int second, int third)", sym.Signature)
}

func TestSymbols_DocAssociation(t *testing.T) {
	t.Parallel()

	fc := extractFixture(t, "../../testdata/code/c/sample_calculator.c")

	assert.Equal(t, "// File constants",
		symbolByName(t, fc, "MAX_CALCULATION_STEPS").Doc)
	assert.Equal(t, "// Constructor helper",
		symbolByName(t, fc, "create_sample_calculator").Doc)
	assert.Equal(t, "// Local helper: validate inputs",
		symbolByName(t, fc, "validate_inputs").Doc)
	assert.Equal(t, "// Release helper",
		symbolByName(t, fc, "destroy_sample_calculator").Doc)
	assert.Equal(t, "// Module-level constants",
		symbolByName(t, fc, "MODULE_VERSION").Doc)

	// Comments inside the body never become docs, and a declaration with
	// no preceding comment gets none.
	assert.Empty(t, symbolByName(t, fc, "add_numbers").Doc)
	assert.Empty(t, symbolByName(t, fc, "AUTHOR_NAME").Doc)
}

func TestSymbols_DocBlockJoined(t *testing.T) {
	t.Parallel()

	unit := SourceUnit{
		Path: "doc.c",
		Text: []byte("// Adds two values.\n// Overflow is the caller's problem.\nint add(int a, int b) {\n    return a + b;\n}\n"),
	}
	fc, err := New(Options{}).Extract(context.Background(), unit)
	require.NoError(t, err)

	sym := symbolByName(t, fc, "add")
	assert.Equal(t, "// Adds two values.\n// Overflow is the caller's problem.", sym.Doc)
}

func TestSymbols_DocBlankLineTolerance(t *testing.T) {
	t.Parallel()

	source := []byte("// Documented helper.\n\nint spaced(void) {\n    return 1;\n}\n")

	strict, err := New(Options{}).Extract(context.Background(),
		SourceUnit{Path: "strict.c", Text: source})
	require.NoError(t, err)
	assert.Empty(t, symbolByName(t, strict, "spaced").Doc,
		"zero tolerance rejects a separated comment")

	relaxed, err := New(Options{DocCommentBlankLines: 1}).Extract(context.Background(),
		SourceUnit{Path: "relaxed.c", Text: source})
	require.NoError(t, err)
	assert.Equal(t, "// Documented helper.",
		symbolByName(t, relaxed, "spaced").Doc)
}

func TestSymbols_NonConstGlobalsExcluded(t *testing.T) {
	t.Parallel()

	unit := SourceUnit{
		Path: "globals.c",
		Text: []byte("static int counter = 0;\nstatic const int LIMIT = 10;\n"),
	}
	fc, err := New(Options{}).Extract(context.Background(), unit)
	require.NoError(t, err)

	names := symbolNames(fc)
	assert.Contains(t, names, "LIMIT")
	assert.NotContains(t, names, "counter", "mutable globals are not constants")
}

func TestSymbols_StructWithBody(t *testing.T) {
	t.Parallel()

	unit := SourceUnit{
		Path: "shapes.c",
		Text: []byte("struct point {\n    int x;\n    int y;\n};\n\nstruct point origin(void) {\n    struct point p;\n    return p;\n}\n"),
	}
	fc, err := New(Options{}).Extract(context.Background(), unit)
	require.NoError(t, err)

	sym := symbolByName(t, fc, "point")
	assert.Equal(t, SymbolStruct, sym.Kind)

	// The body-less `struct point` return type and local are references,
	// not fresh declarations: exactly one struct symbol.
	count := 0
	for s := range fc.SymbolSeq() {
		if s.Kind == SymbolStruct {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
