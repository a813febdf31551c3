//go:build tools

// Package tools tracks tool dependencies invoked through go generate.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
