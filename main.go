package main

import "github.com/prophetlog/prediction-api/cmd"

func main() {
	cmd.Execute()
}
