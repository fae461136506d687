// Package main is the entry point for the planner command-line tool.
package main

import "github.com/pkordes/trip-planner/backend/internal/cli"

func main() {
	cli.Execute()
}
