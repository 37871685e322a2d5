package main

import (
	"errors"

	"github.com/lpp-lang/lpp/cmd/lpp/cmd"
	"github.com/lpp-lang/lpp/internal/cli"
)

func main() {
	err := cmd.Execute()
	if errors.Is(err, cmd.ErrSyntax) {
		// diagnostics are already on stderr
		cli.ExitWithCode(1, "")
	}
	cli.HandleError(err, nil)
}
