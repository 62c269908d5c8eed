package main

import "github.com/Norgate-AV/advup/cmd"

func main() {
	cmd.Execute()
}
