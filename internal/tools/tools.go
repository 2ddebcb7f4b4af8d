//go:build tools

// Package tools pins the lint and test runners so `go run` resolves the same
// versions everywhere:
//
//	go run github.com/golangci/golangci-lint/v2/cmd/golangci-lint run ./...
//	go run gotest.tools/gotestsum --format testname -- ./...
//	go run golang.org/x/tools/cmd/goimports -l .
package tools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "golang.org/x/tools/cmd/goimports"
	_ "gotest.tools/gotestsum"
)
