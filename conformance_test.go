package vktor

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

// conformance_test.go checks vktor's token stream against an independent
// oracle decoder instead of hand-written expectations: for each document,
// jsoniter.Get walks the same structure and we assert the two agree on
// every scalar and on container shape. This catches drift a purely
// hand-written table test would not (wrong surrogate math, off-by-one
// container depth, number text that parses differently than it tokenizes).
var conformanceDocs = []string{
	`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
	`[1,2,3,[4,5,[6]],{"x":7.5}]`,
	`{"name":"café","emoji":"😀","n":-12.375e2}`,
	`[]`,
	`{}`,
	`[[[[]]]]`,
	`"just a string"`,
	`42`,
	`-0.5`,
	`true`,
	`null`,
}

func TestConformanceAgainstJSONIterator(t *testing.T) {
	for _, doc := range conformanceDocs {
		t.Run(doc, func(t *testing.T) {
			oracle := jsoniter.Get([]byte(doc))
			require.NotNil(t, oracle)

			got, err := drain(t, doc)
			require.NoError(t, err)

			checkConformance(t, oracle, got, 0)
		})
	}
}

// checkConformance walks got (vktor's flattened token stream) alongside
// oracle (a jsoniter.Any at the same position) and consumes tokens from
// got as it descends, asserting scalar values and container shape match.
// It returns the index in got of the first token not yet consumed.
func checkConformance(t *testing.T, oracle jsoniter.Any, got []tok, i int) int {
	t.Helper()
	require.Greater(t, len(got), i, "ran out of tokens while walking oracle value")
	tk := got[i]

	switch oracle.ValueType() {
	case jsoniter.NilValue:
		require.Equal(t, KindNull, tk.Kind)
		return i + 1
	case jsoniter.BoolValue:
		if oracle.ToBool() {
			require.Equal(t, KindTrue, tk.Kind)
		} else {
			require.Equal(t, KindFalse, tk.Kind)
		}
		return i + 1
	case jsoniter.NumberValue:
		text := oracle.ToString()
		if tk.Kind == KindInt {
			require.Equal(t, oracle.ToInt64(), tk.Int, "int mismatch for %s", text)
		} else {
			require.Equal(t, KindFloat, tk.Kind)
			require.InDelta(t, oracle.ToFloat64(), tk.Float, 1e-9, "float mismatch for %s", text)
		}
		return i + 1
	case jsoniter.StringValue:
		require.Equal(t, KindString, tk.Kind)
		require.Equal(t, oracle.ToString(), tk.Str)
		return i + 1
	case jsoniter.ArrayValue:
		require.Equal(t, KindArrayStart, tk.Kind)
		i++
		for idx := 0; idx < oracle.Size(); idx++ {
			i = checkConformance(t, oracle.Get(idx), got, i)
		}
		require.Greater(t, len(got), i, "missing array end token")
		require.Equal(t, KindArrayEnd, got[i].Kind)
		return i + 1
	case jsoniter.ObjectValue:
		require.Equal(t, KindObjectStart, tk.Kind)
		i++
		keys := oracle.Keys()
		for _, k := range keys {
			require.Greater(t, len(got), i, "missing object key token")
			require.Equal(t, KindObjectKey, got[i].Kind)
			require.Equal(t, k, got[i].Str)
			i++
			i = checkConformance(t, oracle.Get(k), got, i)
		}
		require.Greater(t, len(got), i, "missing object end token")
		require.Equal(t, KindObjectEnd, got[i].Kind)
		return i + 1
	default:
		t.Fatalf("unexpected oracle value type %v", oracle.ValueType())
		return i
	}
}
