package main

import "github.com/rohitfarmer/journal/cmd"

func main() {
	cmd.Execute()
}
