package main

import "github.com/Nader-Awad/COMP4050BAMBrazil/cmd"

func main() {
	cmd.Execute()
}
