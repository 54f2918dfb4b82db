package app

import (
	"strconv"
	"strings"

	"symrand/domain/expr"
	apperrors "symrand/internal/errors"
	"symrand/ports"
)

// Diagnostic is a recoverable failure of a builtin call. The kernel reports
// it as a message and returns the call unevaluated.
type Diagnostic struct {
	Symbol string
	Tag    string
	Text   string
	Code   string
}

func (d *Diagnostic) Error() string {
	return d.Symbol + "::" + d.Tag + ": " + d.Text
}

// ErrorCode returns the internal/errors code of the failure
func (d *Diagnostic) ErrorCode() string {
	return d.Code
}

// Message converts the diagnostic into an evaluator message.
func (d *Diagnostic) Message() ports.Message {
	return ports.Message{Symbol: d.Symbol, Tag: d.Tag, Text: d.Text}
}

// Message templates. Placeholders `1`, `2`, ... are replaced by the InputForm
// of the message arguments. Symbol specific entries win over generic ones.
var messageTemplates = map[string]string{
	"RandomInteger::unifr": "The endpoints specified by `1` for the endpoints of the discrete uniform distribution range are not integers.",
	"RandomReal::unifr":    "The endpoints specified by `1` for the endpoints of the discrete uniform distribution range are not real valued.",
	"RandomComplex::unifr": "The endpoints specified by `1` for the endpoints of the discrete uniform distribution range are not complex valued.",

	"array":   "The array dimensions `1` given in position 2 of `2` should be a list of non-negative machine-sized integers giving the dimensions for the result.",
	"weights": "The weights `1` given in position 1 of `2` should be a list of non-negative numbers describing probabilities.",
	"lengths": "The number of weights and elements in `1` has to be identical.",
	"list":    "Position 1 should be a list of elements or a rule weights -> elements.",
	"smplen":  "RandomSample cannot generate a sample of length `1`, which is greater than the length of the sample set `2`.",
	"seed":    "Argument `1` should be an integer or string.",
	"rndst":   "It is not possible to change the random state.",
	"argrx":   "`1` called with `2` arguments; between `3` and `4` arguments are expected.",
}

var tagCodes = map[string]string{
	"unifr":   apperrors.CodeArgumentDomain,
	"seed":    apperrors.CodeArgumentDomain,
	"array":   apperrors.CodeArrayDimensions,
	"weights": apperrors.CodeWeights,
	"lengths": apperrors.CodeWeights,
	"list":    apperrors.CodeWeights,
	"smplen":  apperrors.CodeSampleSize,
	"rndst":   apperrors.CodeImmutableState,
	"argrx":   apperrors.CodeInvalidInput,
}

func newDiagnostic(symbol, tag string, args ...expr.Expr) *Diagnostic {
	code, ok := tagCodes[tag]
	if !ok {
		code = apperrors.CodeInvalidInput
	}
	return &Diagnostic{
		Symbol: symbol,
		Tag:    tag,
		Text:   formatMessage(lookupTemplate(symbol, tag), args),
		Code:   code,
	}
}

func lookupTemplate(symbol, tag string) string {
	if t, ok := messageTemplates[symbol+"::"+tag]; ok {
		return t
	}
	if t, ok := messageTemplates[tag]; ok {
		return t
	}
	return tag
}

func formatMessage(template string, args []expr.Expr) string {
	if len(args) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(args))
	for i, a := range args {
		pairs = append(pairs, "`"+strconv.Itoa(i+1)+"`", a.String())
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func argCountDiagnostic(name string, got, lo, hi int) *Diagnostic {
	return newDiagnostic(name, "argrx",
		expr.NewSymbol(name), expr.NewInteger(int64(got)), expr.NewInteger(int64(lo)), expr.NewInteger(int64(hi)))
}
