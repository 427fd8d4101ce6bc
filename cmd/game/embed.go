package main

import "embed"

// configFS holds the default physics.json and level files
//
//go:embed configs
var configFS embed.FS
