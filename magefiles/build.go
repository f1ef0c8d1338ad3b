//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const binDir = "bin"

type Build mg.Namespace

// Builds mdltool into bin/.
func (Build) Tool() error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join(binDir, "mdltool"), "./cmd/mdltool"), withStream())
	return err
}

// Regenerates the sample model and archive used by tests.
func (Build) Testdata() error {
	if _, err := executeCmd("go", withArgs("run", "generate_mdl.go"), withDir("pkg/formats/testdata"), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("run", "generate.go"), withDir("pkg/pak/testdata"), withStream())
	return err
}

// Removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}
