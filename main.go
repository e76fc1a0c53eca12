package main

import "github.com/gkdas2/jax-am/cmd"

func main() {
	cmd.Execute()
}
