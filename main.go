package main

import (
	"github.com/RyanBlaney/prosodia/cmd"
)

func main() {
	cmd.Execute()
}
