package reactor_test

import (
	"errors"
	"fmt"

	"github.com/go-reactor/reactor"
)

func ExampleSource() {
	count := reactor.NewSource(0)
	fmt.Println(count.Read())

	count.Write(10)
	fmt.Println(count.Read())

	// Output:
	// 0
	// 10
}

func ExampleSource_writeNoOp() {
	count := reactor.NewSource(5)

	reactor.NewEffect(func() {
		fmt.Println("ran", count.Read())
	})

	count.Write(5) // identical value, no-op: effect does not re-run

	// Output:
	// ran 5
}

func ExampleDerived() {
	count := reactor.NewSource(1)
	double := reactor.NewDerived(func() int {
		fmt.Println("doubling")
		return count.Read() * 2
	})
	plusTwo := reactor.NewDerived(func() int {
		fmt.Println("adding")
		return double.Read() + 2
	})

	fmt.Println(count.Read())
	fmt.Println(double.Read())
	fmt.Println(plusTwo.Read())

	count.Write(10)
	fmt.Println(count.Read())
	fmt.Println(double.Read())
	fmt.Println(plusTwo.Read())

	// Output:
	// 1
	// doubling
	// 2
	// adding
	// 4
	// 10
	// doubling
	// 20
	// adding
	// 22
}

func ExampleDerived_unsubscribedNoRecompute() {
	count := reactor.NewSource(1)
	squared := reactor.NewDerived(func() int {
		fmt.Println("squaring")
		return count.Read() * count.Read()
	})

	fmt.Println(squared.Read())

	// No subscriber is watching squared, so writes to count do not
	// trigger a recompute until squared is read again.
	count.Write(2)
	count.Write(3)
	count.Write(4)

	fmt.Println(squared.Read())

	// Output:
	// squaring
	// 1
	// squaring
	// 16
}

func ExampleDerived_branchSwitch() {
	useA := reactor.NewSource(true)
	a := reactor.NewSource("a")
	b := reactor.NewSource("b")

	picked := reactor.NewDerived(func() string {
		if useA.Read() {
			return a.Read()
		}
		return b.Read()
	})

	reactor.NewEffect(func() {
		fmt.Println("picked", picked.Read())
	})

	useA.Write(false)
	fmt.Println("picked", picked.Peek())

	// picked now reads b instead of a, so writing b re-runs the effect.
	b.Write("c")

	// Output:
	// picked a
	// picked b
	// picked b
	// picked c
}

func ExampleDerived_formulaError() {
	count := reactor.NewSource(0)
	reciprocal := reactor.NewDerived(func() int {
		if count.Read() == 0 {
			panic(errors.New("division by zero"))
		}
		return 100 / count.Read()
	})

	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Println("recovered:", r)
			}
		}()
		reciprocal.Read()
	}()

	count.Write(10)
	fmt.Println(reciprocal.Read())

	// Output:
	// recovered: division by zero
	// 10
}

func ExampleBatch() {
	a := reactor.NewSource(1)
	b := reactor.NewSource(2)
	sum := reactor.NewDerived(func() int {
		return a.Read() + b.Read()
	})

	reactor.NewEffect(func() {
		fmt.Println("sum", sum.Read())
	})

	reactor.Batch(func() {
		a.Write(10)
		b.Write(20)
	})

	// Output:
	// sum 3
	// sum 30
}

func ExampleSubscribe() {
	count := reactor.NewSource(0)

	dispose := reactor.Subscribe(count, func(v int) {
		fmt.Println("value", v)
	})

	count.Write(1)
	dispose()
	count.Write(2) // no longer subscribed

	// Output:
	// value 0
	// value 1
}
