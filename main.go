package main

import "github.com/gpxtone/gpxtone/cmd"

func main() {
	cmd.Execute()
}
