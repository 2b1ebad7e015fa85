package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	state, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Version{}, state.Current)
	assert.Empty(t, state.ReleaseName)
	assert.True(t, state.Pending.IsEmpty())
	assert.Empty(t, state.Trailing)
}

func TestParse_ReleaseHeaders(t *testing.T) {
	tests := map[string]struct {
		input    string
		wantVer  Version
		wantName string
		wantDate string
	}{
		"name and date": {
			input:    "== 12.0.0 Courageous Camel - 2010/12/12\n",
			wantVer:  Version{12, 0, 0},
			wantName: "Courageous Camel",
			wantDate: "2010/12/12",
		},
		"date only": {
			input:    "== 0.0.1 - 2010/12/12\n",
			wantVer:  Version{0, 0, 1},
			wantDate: "2010/12/12",
		},
		"name only": {
			input:    "== 1.2.3 Bare Name\n",
			wantVer:  Version{1, 2, 3},
			wantName: "Bare Name",
		},
		"version only": {
			input:   "== 4.5.6",
			wantVer: Version{4, 5, 6},
		},
		"name containing dashes": {
			input:    "== 2.0.0 Foo - Bar - 2011/01/01\n",
			wantVer:  Version{2, 0, 0},
			wantName: "Foo - Bar",
			wantDate: "2011/01/01",
		},
		"crlf line ending": {
			input:    "== 3.0.0 Windows - 2012/03/04\r\n",
			wantVer:  Version{3, 0, 0},
			wantName: "Windows",
			wantDate: "2012/03/04",
		},
		"first header wins": {
			input:    "== 2.0.0 - 2011/01/01\n\n== 1.0.0 - 2010/01/01\n",
			wantVer:  Version{2, 0, 0},
			wantDate: "2011/01/01",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			state, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantVer, state.Current)
			assert.Equal(t, tt.wantName, state.ReleaseName)
			assert.Equal(t, tt.wantDate, state.ReleaseDate)
			assert.Equal(t, tt.input, string(state.Trailing), "history is kept verbatim")
		})
	}
}

func TestParse_TrailingIsVerbatim(t *testing.T) {
	input := "== In Progress\n\n=== Bugfixes\n* fix\n\n" +
		"== 1.0.0 - 2010/01/01\n\nanything goes down here\n=== Not A Section\n* whatever\n  \n"

	state, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "== 1.0.0 - 2010/01/01\n\nanything goes down here\n=== Not A Section\n* whatever\n  \n", string(state.Trailing))
	assert.Equal(t, []string{"fix"}, state.Pending.Patch)
}

func TestParse_PendingRegion(t *testing.T) {
	tests := map[string]struct {
		input string
		want  ChangeSet
	}{
		"legacy marker": {
			input: "== In Git\n\n=== Bugfixes\n* bugfix #1\n",
			want:  ChangeSet{Patch: []string{"bugfix #1"}},
		},
		"no marker": {
			input: "=== Minor Changes\n* feature\n",
			want:  ChangeSet{Minor: []string{"feature"}},
		},
		"all sections": {
			input: "== In Progress\n\n=== Major Changes\n* a\n* b\n\n=== Minor Changes\n* c\n\n=== Bugfixes\n* d\n",
			want: ChangeSet{
				Major: []string{"a", "b"},
				Minor: []string{"c"},
				Patch: []string{"d"},
			},
		},
		"section without entries": {
			input: "== In Progress\n\n=== Bugfixes\n\n== 1.0.0 - 2010/01/01\n",
			want:  ChangeSet{},
		},
		"message kept verbatim": {
			input: "=== Bugfixes\n*  two leading spaces\n* trailing space \n",
			want:  ChangeSet{Patch: []string{" two leading spaces", "trailing space "}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			state, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, state.Pending)
		})
	}
}

func TestParse_InterleavedSections(t *testing.T) {
	state, err := Parse(fixture(t, "interleaved"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fix a", "fix c"}, state.Pending.Patch)
	assert.Equal(t, []string{"break b"}, state.Pending.Major)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]struct {
		input string
		cause error
		line  int
	}{
		"bullet before section": {
			input: "* orphan\n",
			cause: ErrMissingSignificance,
			line:  1,
		},
		"bullet after marker": {
			input: "== In Progress\n* orphan\n",
			cause: ErrMissingSignificance,
			line:  2,
		},
		"unknown section": {
			input: "=== Security\n",
			cause: ErrUnknownSignificance,
			line:  1,
		},
		"lowercase section": {
			input: "=== bugfixes\n",
			cause: ErrUnknownSignificance,
			line:  1,
		},
		"free text": {
			input: "Some words\n",
			cause: ErrUnrecognizedContent,
			line:  1,
		},
		"free text inside section": {
			input: "=== Bugfixes\n* ok\nnot a bullet\n",
			cause: ErrUnrecognizedContent,
			line:  3,
		},
		"marker inside section": {
			input: "=== Bugfixes\n* ok\n== In Progress\n",
			cause: ErrUnrecognizedContent,
			line:  3,
		},
		"malformed version": {
			input: "== 1.2\n",
			cause: ErrUnrecognizedContent,
			line:  1,
		},
		"leading zero version": {
			input: "== 01.2.3\n",
			cause: ErrUnrecognizedContent,
			line:  1,
		},
		"empty bullet": {
			input: "=== Bugfixes\n* \n",
			cause: ErrUnrecognizedContent,
			line:  2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			state, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, state)
			assert.ErrorIs(t, err, tt.cause)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, err.Error(), tt.cause.Error())
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	for _, name := range []string{"empty", "normal", "after_0_0_2", "all_types_history", "courageous_camel_history"} {
		t.Run(name, func(t *testing.T) {
			raw := fixture(t, name)
			first, err := Parse(raw)
			require.NoError(t, err)
			second, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestParse_DoesNotAliasInput(t *testing.T) {
	raw := []byte("== 1.0.0 - 2010/01/01\n")
	state, err := Parse(raw)
	require.NoError(t, err)

	raw[3] = '9'
	assert.Equal(t, "== 1.0.0 - 2010/01/01\n", string(state.Trailing))
}

func TestParse_RoundTrip(t *testing.T) {
	tests := map[string]ChangeSet{
		"patch only": {Patch: []string{"fix one", "fix two"}},
		"minor and patch": {
			Minor: []string{"feature"},
			Patch: []string{"fix"},
		},
		"everything": {
			Major: []string{"break", "break again"},
			Minor: []string{"feature"},
			Patch: []string{"fix"},
		},
	}

	for name, changes := range tests {
		t.Run(name, func(t *testing.T) {
			rendered := RenderPending(DefaultUnreleasedMarker, changes)
			state, err := Parse([]byte(rendered + "\n"))
			require.NoError(t, err)
			assert.Equal(t, changes, state.Pending)
			assert.Equal(t, Version{}, state.Current)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		text string
		want lineKind
	}{
		"blank":          {text: "", want: kindBlank},
		"whitespace":     {text: "   \t", want: kindBlank},
		"release header": {text: "== 1.0.0 - 2010/01/01", want: kindReleaseHeader},
		"marker":         {text: "== In Progress", want: kindMarker},
		"section":        {text: "=== Bugfixes", want: kindSection},
		"bullet":         {text: "* change", want: kindBullet},
		"bare asterisk":  {text: "*", want: kindOther},
		"version suffix": {text: "== 1.0.0x", want: kindOther},
		"heading only":   {text: "==", want: kindOther},
		"markdown list":  {text: "- change", want: kindOther},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.text).kind)
		})
	}
}
