package main

import "github.com/mj1618/inspector-gadget/cmd"

func main() {
	cmd.Execute()
}
