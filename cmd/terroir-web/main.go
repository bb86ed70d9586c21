package main

import cmd "github.com/terroirai/terroir-web/internal/cli"

func main() {
	cmd.Execute()
}
