package estimator_test

import (
	"context"
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/linse/estimator"
)

// ExampleEstimator_Run solves one noise-free frame over two substations
// joined by a line.
func ExampleEstimator_Run() {
	net, err := buildNetwork()
	if err != nil {
		fmt.Println(err)
		return
	}
	cat, err := buildCatalog(net)
	if err != nil {
		fmt.Println(err)
		return
	}

	e, err := estimator.New(net, cat)
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := e.Run(context.Background(), frame())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range res.Buses {
		fmt.Printf("%s %s |V|=%.4f pu\n", b.Owner, b.Cluster, cmplx.Abs(b.Estimate[0]))
	}
	fmt.Println("rebuilt:", res.MatrixRebuilt)
	// Output:
	// substation/1 {1,2} |V|=1.0000 pu
	// substation/2 {3} |V|=0.9800 pu
	// rebuilt: true
}
