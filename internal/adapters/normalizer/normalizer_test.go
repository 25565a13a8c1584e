package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var normalizeCases = []struct {
	name  string
	input string
	want  string
}{
	{name: "empty", input: "", want: ""},
	{name: "only spaces", input: "     ", want: ""},
	{name: "mixed whitespace only", input: " \t\n\r\v\f ", want: ""},
	{name: "trim", input: "  hello  ", want: "hello"},
	{name: "collapse", input: "hello     world", want: "hello world"},
	{name: "tabs and newlines", input: "\thello\n\nworld\r\n", want: "hello world"},
	{name: "already normal", input: "hello world", want: "hello world"},
	{name: "unicode spaces", input: "hello  world　", want: "hello world"},
	{name: "multibyte text", input: "  Café   naïve  résumé ", want: "Café naïve résumé"},
	{name: "punctuation kept", input: " hello ,  world . ", want: "hello , world ."},
	{name: "invalid utf8 kept", input: " a\xffb  c ", want: "a\xffb c"},
}

func TestNormalizers(t *testing.T) {
	factory := NewNormalizerFactory()
	normalizers := map[string]NormalizerType{
		"default":   DefaultNormalizerType,
		"optimized": OptimizedNormalizerType,
	}

	for name, typ := range normalizers {
		n := factory.CreateNormalizer(typ)
		t.Run(name, func(t *testing.T) {
			for _, tc := range normalizeCases {
				t.Run(tc.name, func(t *testing.T) {
					assert.Equal(t, tc.want, n.Normalize(tc.input))
				})
			}
		})
	}
}

func TestOptimizedMatchesDefault(t *testing.T) {
	def := NewDefaultNormalizer()
	opt := NewOptimizedNormalizer()

	inputs := []string{
		strings.Repeat("  lorem\tipsum \n", 500),
		"x",
		" x ",
		" line para\u0085next",
		strings.Repeat("é ", 3000),
	}
	for _, in := range inputs {
		assert.Equal(t, def.Normalize(in), opt.Normalize(in))
	}
}

func TestOptimizedNormalizerReusesBuffers(t *testing.T) {
	opt := NewOptimizedNormalizer()

	first := opt.Normalize("  first   call  ")
	second := opt.Normalize("second")

	// Results must not alias the pooled buffer.
	assert.Equal(t, "first call", first)
	assert.Equal(t, "second", second)
}
