package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/docguard/anonymizer-cli/cmd"
	"github.com/docguard/anonymizer-cli/internal/apperr"
)

func main() {
	if err := cmd.GetRootCmd().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, apperr.ErrCancelled) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
