package main

import "github.com/sliceworks/pizzactl/cmd/pizzactl/cmd"

func main() {
	cmd.Execute()
}
