package fancy

import (
	"github.com/charmbracelet/lipgloss/tree"
)

// ComponentTree is a rounded, consistently styled lipgloss tree.
type ComponentTree struct {
	tree *tree.Tree
}

// NewComponentTree creates a tree whose root node is title.
func NewComponentTree(title string) *ComponentTree {
	t := tree.New().Root(title)
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)
	return &ComponentTree{tree: t}
}

// Tree returns the underlying tree.
func (c *ComponentTree) Tree() *tree.Tree {
	return c.tree
}

// AddChild appends a leaf or a nested tree under the root.
func (c *ComponentTree) AddChild(child any) {
	if ct, ok := child.(*ComponentTree); ok {
		child = ct.tree
	}
	c.tree.Child(child)
}

// AddBranch appends a titled subtree and returns it for further children.
func (c *ComponentTree) AddBranch(title string) *ComponentTree {
	sub := NewComponentTree(title)
	c.tree.Child(sub.tree)
	return sub
}

func (c *ComponentTree) String() string {
	return c.tree.String()
}
