package main

import "github.com/mj1618/flow/cmd"

func main() {
	cmd.Execute()
}
