// acoconv - Adobe Photoshop colour swatch decoder
//
// acoconv reads Photoshop Color Swatch (.aco) files, lists their colours
// and converts them to Paint.NET palettes.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/acoconv/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
