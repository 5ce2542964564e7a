package model

// ValidationContext tracks the blocks enclosing the node being validated.
type ValidationContext struct {
	blocks []Block
}

// Parent returns the innermost enclosing block, or nil at the top level.
func (c *ValidationContext) Parent() Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Tasks reports whether validation is inside a task section.
func (c *ValidationContext) Tasks() bool {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if s, ok := c.blocks[i].(*TestCaseSection); ok {
			return s.Tasks()
		}
	}
	return false
}

// InKeyword reports whether validation is inside a user keyword.
func (c *ValidationContext) InKeyword() bool {
	for _, b := range c.blocks {
		if _, ok := b.(*Keyword); ok {
			return true
		}
	}
	return false
}

func (c *ValidationContext) testLabel() string {
	if c.Tasks() {
		return "Task"
	}
	return "Test"
}

// Validate sets the errors of n and every node below it. Errors found by an
// earlier validation are not cleared.
func Validate(n Node) {
	validate(n, &ValidationContext{})
}

func validate(n Node, ctx *ValidationContext) {
	if nodes, ok := n.(Nodes); ok {
		for _, child := range nodes {
			validate(child, ctx)
		}
		return
	}
	block, ok := n.(Block)
	if !ok {
		n.Validate(ctx)
		return
	}
	ctx.blocks = append(ctx.blocks, block)
	block.Validate(ctx)
	for _, child := range block.Children() {
		validate(child, ctx)
	}
	ctx.blocks = ctx.blocks[:len(ctx.blocks)-1]
}
