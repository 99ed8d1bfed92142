package main

import "github.com/Fontikcz12/quantizer/cmd"

func main() {
	cmd.Execute()
}
