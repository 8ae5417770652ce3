package main

import "github.com/peekknuf/skatergrade/cmd"

func main() {
	cmd.Execute()
}
