package main

import (
	"os"

	"github.com/alexDouze/git-site-clone/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
