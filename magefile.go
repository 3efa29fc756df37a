//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "jsonlingo"
	mainPath   = "./cmd/jsonlingo"
)

// Default target to run when none is specified
var Default = Build

// Build builds the jsonlingo binary
func Build() error {
	return sh.RunV("go", "build", "-o", binaryName, mainPath)
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into $GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", mainPath)
}

// Run builds and starts the HTTP service
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(".", binaryName), "serve")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binaryName)
}
