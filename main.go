package main

import "github.com/usvisa/datacheck/cmd"

func main() {
	cmd.Execute()
}
