package main

import "github.com/colortelevision/midi-scale-conv/cmd"

func main() {
	cmd.Execute()
}
