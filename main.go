package main

import (
	_ "embed"

	"github.com/zachlandes/2ml-crm/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
