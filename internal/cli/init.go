package cli

import (
	"fmt"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	fmt.Println("Initialized stackline storage at", ctx.Store.GetConfigPath())
	return nil
}
