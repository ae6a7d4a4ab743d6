package main

import "github.com/micatools/mica/cmd"

func main() {
	cmd.Execute()
}
