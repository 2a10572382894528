package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in        string
		canonical string
		columns   []string
	}{
		{in: "eq(region,cn)", canonical: "eq(region,cn)", columns: []string{"region"}},
		{in: " EQ( region , cn ) ", canonical: "eq(region,cn)", columns: []string{"region"}},
		{in: "or(lt(a.b.c, 2.0), gt(a.b.c, 3.0))", canonical: "or(lt(a.b.c,2.0),gt(a.b.c,3.0))", columns: []string{"a.b.c"}},
		{in: "and(ge(id,10),not(eq(region,us)))", canonical: "and(ge(id,10),not(eq(region,us)))", columns: []string{"id", "region"}},
		{in: "ne(name, a,b)", canonical: "ne(name,a,b)", columns: []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, expr.String())
			assert.Equal(t, tt.columns, Columns(expr))

			again, err := Parse(expr.String())
			require.NoError(t, err)
			assert.Equal(t, expr, again)
		})
	}
}

func TestParseStructure(t *testing.T) {
	expr, err := Parse("or(eq(a,1),le(b,2))")
	require.NoError(t, err)

	or, ok := expr.(*Logical)
	require.True(t, ok)
	assert.Equal(t, OpOr, or.Op)
	assert.Equal(t, &Comparison{Op: OpEq, Column: "a", Value: "1"}, or.Left)
	assert.Equal(t, &Comparison{Op: OpLe, Column: "b", Value: "2"}, or.Right)
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"region",
		"(a,1)",
		"eq(a,1",
		"eq(a,(1)",
		"eq(a,1))",
		"eq()",
		"eq(a,)",
		"eq(,1)",
		"eq(a)",
		"like(a,1)",
		"or(eq(a,1))",
		"and(eq(a,1),eq(b,2),eq(c,3))",
		"not(eq(a,1),eq(b,2))",
		"or(eq(a,1),oops)",
		"eq(a,lt(b,1))",
	} {
		t.Run(in, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := Parse(in)
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				f, ok := errors.Detail(err, "filter")
				require.True(t, ok)
				assert.Equal(t, in, f)
			})
		})
	}
}

func TestIsComparison(t *testing.T) {
	assert.True(t, OpGe.IsComparison())
	assert.False(t, OpAnd.IsComparison())
	assert.False(t, OpNot.IsComparison())
}
