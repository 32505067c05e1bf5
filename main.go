package main

import "github.com/onurmatik/MarkovMusic/cmd"

func main() {
	cmd.Execute()
}
