package calc_test

import (
	"errors"
	"fmt"

	"github.com/mgomes/calcengine/calc"
)

func ExampleCalculate() {
	for _, expr := range []string{"2+3*4", "(2+3)*4", "10-2-3", "7%3", "", "2+(3*4", "4/0"} {
		value, err := calc.Calculate(expr)
		var calcErr *calc.Error
		if errors.As(err, &calcErr) {
			fmt.Printf("%q: %v\n", expr, calcErr.Kind)
			continue
		}
		fmt.Printf("%q = %s\n", expr, calc.FormatNumber(value))
	}

	// Output:
	// "2+3*4" = 14
	// "(2+3)*4" = 20
	// "10-2-3" = 5
	// "7%3" = 1
	// "": empty expression
	// "2+(3*4": unbalanced parentheses
	// "4/0": division by zero
}

func ExampleEngine_Compile() {
	engine := calc.MustNewEngine(calc.Config{})
	program, err := engine.Compile("1 + 2 * (3 - 4)")
	if err != nil {
		panic(err)
	}
	value, _ := program.Eval()
	fmt.Println(program)
	fmt.Println(calc.FormatNumber(value))

	// Output:
	// 1 2 3 4 - * +
	// -1
}

func ExampleEngine_Calculate() {
	engine := calc.MustNewEngine(calc.Config{Mode: calc.ModeLenient})
	for _, expr := range []string{"12 apples + 3 pears", "(2+3", "4/0"} {
		value, _ := engine.Calculate(expr)
		fmt.Println(calc.FormatNumber(value))
	}

	// Output:
	// 15
	// 5
	// Infinity
}
