package main

import "github.com/mantas/appointments/internal/cli/cmd"

func main() {
	cmd.Execute()
}
