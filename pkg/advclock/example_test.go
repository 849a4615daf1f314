package advclock_test

import (
	"fmt"
	"time"

	"github.com/weisyn/advclock/pkg/advclock"
	"github.com/weisyn/advclock/pkg/utils/timeutil"
)

func doStuff() float64 {
	sum := 0.0
	for i := 0; i < 999; i++ {
		for j := 0; j < 999; j++ {
			sum += float64(i*j + i)
		}
	}
	return sum
}

func ExampleStopwatch() {
	sw := advclock.New()
	doStuff()
	elapsed := sw.Elapsed()

	fmt.Println(elapsed > 0)
	// Output: true
}

func ExampleStopwatch_Lap() {
	sw := advclock.New()
	for i := 0; i < 3; i++ {
		doStuff()
		lap := sw.Lap()
		fmt.Println(lap >= 0)
	}
	// Output:
	// true
	// true
	// true
}

func ExampleElapsedAs() {
	sw := advclock.New()
	doStuff()
	micros := advclock.ElapsedAs[int64](sw, timeutil.Microseconds, false)
	fmt.Println(micros >= 0)
	// Output: true
}

func Example_readout() {
	d := 36*time.Hour + 30*time.Minute
	for _, u := range timeutil.Units() {
		fmt.Printf("%-12s %.6g\n", u, timeutil.Convert(d, u))
	}
	// Output:
	// nanoseconds  1.314e+14
	// microseconds 1.314e+11
	// milliseconds 1.314e+08
	// seconds      131400
	// minutes      2190
	// hours        36.5
	// days         1.52083
	// weeks        0.217262
	// months       0.000346994
	// years        0.00416393
}
