package main

import "github.com/mkotas/face-match/cmd"

func main() {
	cmd.Execute()
}
