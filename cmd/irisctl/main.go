package main

import "github.com/jhoicas/Iris-api/cmd/irisctl/cmd"

func main() {
	cmd.Execute()
}
