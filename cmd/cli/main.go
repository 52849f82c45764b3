package main

import "smalipatch/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
