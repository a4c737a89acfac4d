package main

import "github.com/notargets/goblast/cmd"

func main() {
	cmd.Execute()
}
