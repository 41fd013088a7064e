package main

import "github.com/Rorical/QuickAct/cmd"

func main() {
	cmd.Execute()
}
