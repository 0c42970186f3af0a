/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/

package main

import (
	"github.com/killallgit/podcast-tui/cmd"
)

func main() {
	cmd.Execute()
}
