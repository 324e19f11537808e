package tools

import (
	"fmt"
	"maps"
	"slices"

	"github.com/atlanticdynamic/mcplauncher/internal/fancy"
)

// ToTree renders the set as a tree of tools with their kind and parameters.
func (s *Set) ToTree() *fancy.ComponentTree {
	root := fancy.NewComponentTree(
		fmt.Sprintf("%s %s", fancy.RootStyle.Render("Tools"), fancy.PathText(s.dir)))
	for _, t := range s.tools {
		root.AddChild(t.ToTree())
	}
	if len(s.tools) == 0 {
		root.AddChild(fancy.PathText("(none)"))
	}
	return root
}

// ToTree renders one tool.
func (t *Tool) ToTree() *fancy.ComponentTree {
	node := fancy.NewComponentTree(fancy.ToolText(t.Name))
	kind := string(t.Kind)
	if t.Kind == KindBuiltin {
		kind = fmt.Sprintf("%s (%s)", t.Kind, t.Builtin)
	}
	node.AddChild("Kind: " + fancy.KindText(kind))
	if t.Description != "" {
		node.AddChild("Description: " + fancy.TruncateString(t.Description, 80))
	}
	node.AddChild("Timeout: " + t.Timeout.String())

	if len(t.Params) > 0 {
		params := node.AddBranch("Params")
		for _, name := range slices.Sorted(maps.Keys(t.Params)) {
			p := t.Params[name]
			label := fancy.ParamText(name)
			if p.Type != "" {
				label += " " + fancy.PathText(p.Type)
			}
			if slices.Contains(t.Required, name) {
				label += " (required)"
			}
			params.AddChild(label)
		}
	}
	return node
}
