package main

import (
	"os"
)

func main() {
	err := NewRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}
