package main

import "github.com/lovefest/lovefest_backend/cmd"

func main() {
	cmd.Execute()
}
