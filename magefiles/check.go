//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Check mg.Namespace

// Runs the test suite with the race detector.
func (Check) Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs go vet over every package.
func (Check) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs vet then tests.
func (Check) All() {
	mg.SerialDeps(Check.Vet, Check.Test)
}

// Tidies go.mod and go.sum.
func Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"), withEnv("GOFLAGS=-mod=mod"))
	return err
}
