package main

import "github.com/frahmantamala/hrms-lite/cmd"

func main() {
	cmd.Execute()
}
