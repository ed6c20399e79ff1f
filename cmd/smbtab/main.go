/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/smbtab/smbtab/cmd/smbtab/cmd"

func main() {
	cmd.Execute()
}
