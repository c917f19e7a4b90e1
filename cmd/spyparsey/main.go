package main

import "github.com/LtHummus/spyparsey/cmd/spyparsey/cmd"

func main() {
	cmd.Execute()
}
