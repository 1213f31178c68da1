package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unquoteScript reverses ScriptString
func unquoteScript(t *testing.T, lit string) string {
	t.Helper()
	require.True(t, len(lit) >= 2 && lit[0] == '\'' && lit[len(lit)-1] == '\'', "not quoted: %s", lit)
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			require.NotEqual(t, byte('\''), c, "unescaped quote in %s", lit)
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func TestScriptString_RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"plain",
		`Say "hi"` + "\nnow",
		"it's\r\n",
		`back\slash \n literal`,
		"</script><script>alert(1)</script>",
		"ünïcödé",
	}
	for _, s := range tests {
		lit := ScriptString(s)
		assert.NotContains(t, lit, "\n")
		assert.NotContains(t, lit, "</")
		assert.Equal(t, s, unquoteScript(t, lit))
	}
}

func TestFormUploadExporter_Entries(t *testing.T) {
	out := render(t, NewFormUploadExporter(&bytes.Buffer{}), fixtureState(t))

	require.True(t, strings.HasPrefix(out, formHead))
	require.True(t, strings.HasSuffix(out, formTail))

	body := strings.TrimSuffix(strings.TrimPrefix(out, formHead), formTail)
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, ` {"a": 'http://x.com', "t": 'Example --Doubled-- Example2', "o": '', "e":['Dev', 'Work']}`, lines[0])
	assert.Equal(t, `, {"a": 'http://desc.example/?a=1&b=2', "t": 'With Description', "o": '  some  notes\n', "e":['Work']}`, lines[2])
	assert.Equal(t, `, {"a": 'http://nolabel.example/', "t": 'Say \"Hi\"\nNow', "o": ''}`, lines[4])
	assert.NotContains(t, lines[4], `"e"`)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, `, {"a": `), line)
	}
}

func TestFormUploadExporter_Empty(t *testing.T) {
	out := render(t, NewFormUploadExporter(&bytes.Buffer{}), aggregate.NewState())
	assert.Equal(t, formHead+formTail, out)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "The Go Site", TitleCase("the go SITE"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "Dev", TitleCase("dev"))
}

func TestTitleCase_WordBoundaries(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"go-lang notes", "Go-Lang Notes"},
		{"don't panic", "Don't Panic"},
		{"o'neil", "O'neil"},
		{"x.com tips", "X.com Tips"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}
