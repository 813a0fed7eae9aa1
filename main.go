package main

import "github.com/pokeprice/engine/cmd"

func main() {
	cmd.Execute()
}
