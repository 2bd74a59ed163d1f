package main

import (
	"fmt"

	"gridworld/experiments"
)

func main() {
	fmt.Printf("Running budget experiment...\n")
	experiments.RunBudgetExperiment()
	fmt.Printf("Finished budget experiment.\n")
}
