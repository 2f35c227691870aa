package ifs_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/ifscope/pkg/ifs"
)

func ExampleGenerate() {
	sys, err := ifs.Default().Lookup("fern")
	if err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
	points := ifs.Generate(sys, 10000, rng)

	fmt.Println("points:", len(points))
	fmt.Println("transforms:", sys.Len())
	// Output:
	// points: 10000
	// transforms: 4
}

func ExampleNewSystem() {
	_, err := ifs.NewSystem("empty", "no maps")
	fmt.Println(err)
	// Output:
	// INVALID_SYSTEM: system "empty" has no transforms
}

func ExampleState() {
	st, err := ifs.NewState(ifs.Default(),
		ifs.WithSelection("dragon"),
		ifs.WithCount(500),
		ifs.WithSource(rand.New(rand.NewPCG(1, 2))),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(st.Selected().Name(), len(st.Regenerate()))

	if err := st.Select("koch"); err != nil {
		fmt.Println(err)
	}
	// Output:
	// dragon 500
	// UNKNOWN_SYSTEM: unknown system: "koch"
}
