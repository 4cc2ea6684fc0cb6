package calc

import (
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The evaluator must agree with a general-purpose expression engine on the
// arithmetic subset it accepts.
func TestEvaluateAgreesWithGovaluate(t *testing.T) {
	exprs := []string{
		"2+3*4",
		"(1+2)*3",
		"10/4",
		"1-2-3",
		"2*(3+4)*5",
		"100/8/5",
		"-3+5",
		"0.1+0.2",
		"7-(2-1)",
		"((1.5+2.25)*4)/3",
		"123456789*987654321",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			ge, err := govaluate.NewEvaluableExpression(expr)
			require.NoError(t, err)
			raw, err := ge.Evaluate(nil)
			require.NoError(t, err)
			want, ok := raw.(float64)
			require.True(t, ok)

			got, err := Evaluate(expr)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9)
		})
	}
}
