package main

import "github.com/mtetteh/groundwork/cmd"

func main() {
	cmd.Execute()
}
