package main

import "github.com/cmmoran/createdom/cmd"

func main() {
	cmd.Execute()
}
