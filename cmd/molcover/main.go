// cmd/molcover/main.go
package main

import (
	"molcover/internal/app"
	"molcover/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
