package fancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlanticdynamic/mcplauncher/internal/fancy"
)

func TestComponentTree(t *testing.T) {
	root := fancy.NewComponentTree("tools")
	branch := root.AddBranch("echo")
	branch.AddChild("kind: builtin")
	root.AddChild(fancy.NewComponentTree("nested"))

	out := root.String()
	assert.Contains(t, out, "tools")
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "kind: builtin")
	assert.Contains(t, out, "nested")
	assert.NotNil(t, root.Tree())
}

func TestStyledText(t *testing.T) {
	for _, fn := range []func(string) string{
		fancy.ToolText, fancy.KindText, fancy.ParamText,
		fancy.ErrorText, fancy.ValidText, fancy.PathText,
	} {
		assert.Contains(t, fn("sample"), "sample")
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", fancy.TruncateString("short", 10))
	assert.Equal(t, "abcdefg...", fancy.TruncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", fancy.TruncateString("abcdef", 2))
}
