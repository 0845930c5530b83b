package simulated_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSimulated(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Simulated Element Suite")
}
