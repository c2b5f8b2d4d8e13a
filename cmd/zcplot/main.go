package main

import "github.com/user/zcplot_go/cmd/zcplot/cmd"

func main() {
	cmd.Execute()
}
