package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/limaJavier/hstt/pkg/model"
	"github.com/spf13/cobra"
)

func runCheck(_ *cobra.Command, _ []string) {
	instance, err := loadInstance(instanceFile)
	if err != nil {
		log.Fatalf("cannot load instance: %v", err)
	}

	soln := model.NewSolution(&instance)
	if solutionFile != "" {
		if soln, err = model.ReadJsonFile(&instance, solutionFile); err != nil {
			log.Fatalf("cannot load solution: %v", err)
		}
	}

	fmt.Printf("Instance: %v\n", instance.Name)
	fmt.Printf("Times: %v, Resources: %v, Events: %v, Constraints: %v, Meets: %v\n",
		len(instance.Times), len(instance.Resources), len(instance.Events), len(instance.Constraints), soln.MeetCount())
	fmt.Printf("Cost: %v\n\n", soln.Cost())

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "KIND\tMONITORS\tCOST")
	for _, kind := range soln.CostByKind() {
		fmt.Fprintf(writer, "%v\t%v\t%v\n", kind.Kind, kind.Monitors, kind.Cost)
	}
	writer.Flush()

	if defects := soln.Defects(); len(defects) > 0 {
		fmt.Println()
		for _, defect := range defects {
			fmt.Println(defect)
		}
	}

	if soln.Cost().Hard > 0 {
		os.Exit(exitInfeasible)
	}
	os.Exit(exitFeasible)
}
