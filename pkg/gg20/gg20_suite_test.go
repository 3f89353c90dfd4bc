package gg20_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGG20(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "GG20 threshold ECDSA Suite")
}
