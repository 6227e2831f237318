package coverage

import (
	"docscan/internal/engine/parser"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	entities := []parser.Entity{
		{Kind: parser.KindModule, Name: parser.ModuleName, HasDocstring: true},
		{Kind: parser.KindFunction, Name: "a", HasDocstring: true},
		{Kind: parser.KindFunction, Name: "b"},
		{Kind: parser.KindFunction, Name: "c"},
		{Kind: parser.KindClass, Name: "C", HasDocstring: true},
	}

	s := Aggregate(entities)
	assert.Equal(t, 3, s.Functions)
	assert.Equal(t, 1, s.Classes)
	assert.Equal(t, 1, s.DocumentedFunctions)
	assert.Equal(t, 1, s.DocumentedClasses)
	assert.True(t, s.HasModuleDoc)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Documented)
	assert.Equal(t, 2, s.Missing)
	assert.InDelta(t, 60.0, s.Percentage, 1e-9)
}

func TestAggregate_ModuleOnly(t *testing.T) {
	s := Aggregate([]parser.Entity{{Kind: parser.KindModule, Name: parser.ModuleName}})
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 0, s.Documented)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 0.0, s.Percentage)
}

func TestAggregate_TotalCountsModuleEvenWhenAbsent(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Missing)
	assert.False(t, s.HasModuleDoc)
}

func TestAggregate_Invariants(t *testing.T) {
	cases := [][]parser.Entity{
		{{Kind: parser.KindModule, HasDocstring: true}},
		{{Kind: parser.KindModule}, {Kind: parser.KindClass}, {Kind: parser.KindClass, HasDocstring: true}},
		{{Kind: parser.KindModule, HasDocstring: true}, {Kind: parser.KindFunction, HasDocstring: true}},
	}
	for _, entities := range cases {
		s := Aggregate(entities)
		assert.Equal(t, s.Total, s.Documented+s.Missing)
		assert.GreaterOrEqual(t, s.Percentage, 0.0)
		assert.LessOrEqual(t, s.Percentage, 100.0)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, Percentage(0, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 100.0, Percentage(4, 4))
}
